package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/airsight/airsight/pkg/aqi"
	"github.com/airsight/airsight/pkg/policy"
	"github.com/airsight/airsight/pkg/sources"
)

const defaultBaseline = 276

type printer struct {
	out  io.Writer
	json bool
}

func (p *printer) emit(v any, text func(w *tabwriter.Writer)) error {
	if p.json {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	text(w)
	return w.Flush()
}

func newRootCmd(out io.Writer) *cobra.Command {
	p := &printer{out: out}

	root := &cobra.Command{
		Use:          "aqictl",
		Short:        "Classify AQI values and simulate pollution-control policies",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().BoolVar(&p.json, "json", false, "print JSON instead of text")

	root.AddCommand(classifyCmd(p))
	root.AddCommand(bandsCmd(p))
	root.AddCommand(simulateCmd(p))
	root.AddCommand(catalogCmd(p))
	root.AddCommand(attributeCmd(p))
	root.AddCommand(pm25Cmd(p))
	return root
}

func parseNumber(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", arg)
	}
	return v, nil
}

func classifyCmd(p *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [aqi]",
		Short: "Show the health-risk band for an AQI value",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			band := aqi.Classify(v)
			return p.emit(band, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "level:\t%s\n", band.Level)
				fmt.Fprintf(w, "range:\t%s\n", band.Range)
				fmt.Fprintf(w, "groups:\t%s\n", band.Groups)
				fmt.Fprintf(w, "advisory:\t%s\n", band.Advisory)
			})
		},
	}
}

func bandsCmd(p *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "List the health-risk bands",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			levels := aqi.Levels()
			return p.emit(levels, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "LEVEL\tRANGE\tGROUPS")
				for _, l := range levels {
					fmt.Fprintf(w, "%s\t%s\t%s\n", l.Level, l.Range, l.Groups)
				}
			})
		},
	}
}

func simulateCmd(p *printer) *cobra.Command {
	var (
		baseline float64
		in       policy.Input
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project the AQI after applying policy levers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for name, v := range map[string]float64{
				"traffic":      in.TrafficReductionPct,
				"construction": in.ConstructionHaltPct,
				"industrial":   in.IndustrialControlPct,
			} {
				if v < 0 || v > 100 {
					return fmt.Errorf("--%s must be between 0 and 100", name)
				}
			}
			res := policy.Simulate(baseline, in)
			return p.emit(res, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "baseline:\t%g\n", res.BaselineAQI)
				fmt.Fprintf(w, "projected:\t%d (%s)\n", res.ProjectedAQI, aqi.Classify(float64(res.ProjectedAQI)).Level)
				fmt.Fprintf(w, "reduction:\t%s%%\n", res.ReductionLabel())
			})
		},
	}

	cmd.Flags().Float64VarP(&baseline, "baseline", "b", defaultBaseline, "baseline AQI")
	cmd.Flags().Float64Var(&in.TrafficReductionPct, "traffic", 0, "traffic reduction percent (0-100)")
	cmd.Flags().Float64Var(&in.ConstructionHaltPct, "construction", 0, "construction halt percent (0-100)")
	cmd.Flags().Float64Var(&in.IndustrialControlPct, "industrial", 0, "industrial control percent (0-100)")
	return cmd
}

func catalogCmd(p *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the recommended interventions",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			recs := policy.Catalog()
			return p.emit(recs, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tSEVERITY\tIMPACT\tTITLE")
				for _, r := range recs {
					fmt.Fprintf(w, "%d\t%s\t-%d%%\t%s\n", r.ID, r.Severity, r.Impact, r.Title)
				}
				fmt.Fprintf(w, "\t\t-%d%%\ttotal\n", policy.TotalImpact(recs))
			})
		},
	}
}

func attributeCmd(p *printer) *cobra.Command {
	values := make(map[aqi.Pollutant]*float64)

	cmd := &cobra.Command{
		Use:   "attribute",
		Short: "Attribute pollution to emission sources",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conc := make(map[aqi.Pollutant]float64, len(values))
			for pol, v := range values {
				if *v < 0 {
					return fmt.Errorf("negative concentration for %s", pol)
				}
				conc[pol] = *v
			}
			contrib := sources.Attribute(conc)
			return p.emit(contrib, func(w *tabwriter.Writer) {
				if len(contrib) == 0 {
					fmt.Fprintln(w, "no pollutant load")
					return
				}
				for _, src := range sources.Order {
					fmt.Fprintf(w, "%s\t%.2f%%\n", src, contrib[src])
				}
			})
		},
	}

	for _, pol := range aqi.AllPollutants() {
		if pol == aqi.O3 {
			continue
		}
		v := new(float64)
		values[pol] = v
		cmd.Flags().Float64Var(v, strings.ToLower(string(pol)), 0, fmt.Sprintf("%s concentration", pol))
	}
	return cmd
}

func pm25Cmd(p *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "pm25 [concentration]",
		Short: "Convert a PM2.5 concentration to a stepped AQI",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			value := aqi.FromPM25(c)
			out := struct {
				PM25     float64      `json:"pm25"`
				AQI      int          `json:"aqi"`
				Category aqi.Category `json:"category"`
				Level    aqi.Level    `json:"level"`
			}{c, value, aqi.CategoryOf(value), aqi.Classify(float64(value)).Level}
			return p.emit(out, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "aqi:\t%d\n", out.AQI)
				fmt.Fprintf(w, "category:\t%s\n", out.Category)
				fmt.Fprintf(w, "level:\t%s\n", out.Level)
			})
		},
	}
}
