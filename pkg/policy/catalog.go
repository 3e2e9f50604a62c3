package policy

// Severity ranks how urgently a recommendation should be acted on.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// Recommendation is a named intervention with a fixed estimated impact in
// percent AQI reduction.
type Recommendation struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Icon        string   `json:"icon"`
	Impact      int      `json:"impact"`
}

var catalog = [...]Recommendation{
	{
		ID:          1,
		Title:       "Restrict Peak-Hour Traffic",
		Description: "Implement odd-even vehicle restrictions during 8AM-10AM and 5PM-8PM in high-density corridors.",
		Severity:    SeverityHigh,
		Icon:        "car",
		Impact:      15,
	},
	{
		ID:          2,
		Title:       "Temporary Halt on Construction",
		Description: "Suspend all non-essential construction activities until AQI drops below 200.",
		Severity:    SeverityCritical,
		Icon:        "building",
		Impact:      12,
	},
	{
		ID:          3,
		Title:       "Promote EV Incentives",
		Description: "Fast-track EV subsidies and deploy additional charging infrastructure in NCR region.",
		Severity:    SeverityMedium,
		Icon:        "zap",
		Impact:      8,
	},
	{
		ID:          4,
		Title:       "Industrial Emission Caps",
		Description: "Enforce stricter emission limits on factories within 50km radius of monitoring stations.",
		Severity:    SeverityHigh,
		Icon:        "factory",
		Impact:      18,
	},
}

// Catalog returns a copy of the default recommendations.
func Catalog() []Recommendation {
	out := make([]Recommendation, len(catalog))
	copy(out, catalog[:])
	return out
}

// TotalImpact sums the estimated impact of every recommendation. It is a
// catalog aggregate and is not derived from any simulation.
func TotalImpact(recs []Recommendation) int {
	total := 0
	for _, r := range recs {
		total += r.Impact
	}
	return total
}
