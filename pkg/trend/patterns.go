// Package trend finds seasonal patterns in historical AQI series.
package trend

import (
	"errors"
	"time"
)

// ErrNoSamples is returned when there is nothing to analyze.
var ErrNoSamples = errors.New("no samples")

// Sample is one dated AQI observation.
type Sample struct {
	Date time.Time `json:"date"`
	AQI  float64   `json:"aqi"`
}

// Patterns summarizes AQI by calendar month.
type Patterns struct {
	WorstMonth     time.Month             `json:"worst_month"`
	BestMonth      time.Month             `json:"best_month"`
	MonthlyAverage map[time.Month]float64 `json:"monthly_average_aqi"`
}

// Detect averages samples per calendar month and picks the months with the
// highest and lowest mean. Ties resolve to the earlier month.
func Detect(samples []Sample) (Patterns, error) {
	if len(samples) == 0 {
		return Patterns{}, ErrNoSamples
	}

	var sum [13]float64
	var count [13]int
	for _, s := range samples {
		m := s.Date.Month()
		sum[m] += s.AQI
		count[m]++
	}

	p := Patterns{MonthlyAverage: make(map[time.Month]float64)}
	first := true
	for m := time.January; m <= time.December; m++ {
		if count[m] == 0 {
			continue
		}
		avg := sum[m] / float64(count[m])
		p.MonthlyAverage[m] = avg
		if first {
			p.WorstMonth, p.BestMonth = m, m
			first = false
			continue
		}
		if avg > p.MonthlyAverage[p.WorstMonth] {
			p.WorstMonth = m
		}
		if avg < p.MonthlyAverage[p.BestMonth] {
			p.BestMonth = m
		}
	}
	return p, nil
}
