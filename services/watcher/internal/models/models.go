package models

import "time"

// Station is a monitoring location from the station catalog.
type Station struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Lat       float64 `yaml:"lat"`
	Lon       float64 `yaml:"lon"`
	TopSource string  `yaml:"top_source"`
}

// Catalog is the on-disk station list.
type Catalog struct {
	Stations []Station `yaml:"stations"`
}

// StationRow captures the normalized station metadata for DB operations.
type StationRow struct {
	ID        string
	Name      string
	Lat       float64
	Lon       float64
	TopSource *string
	Metadata  map[string]any
}

// ReadingCandidate encapsulates a normalized reading ready for insertion.
type ReadingCandidate struct {
	StationID string
	TS        time.Time
	AQI       int
	Category  string
	PM25      float64
	PM10      float64
	NO2       float64
	SO2       float64
	CO        float64
	O3        float64
}

// LastReading represents the most recent stored reading for comparison.
type LastReading struct {
	PM25 float64
	TS   time.Time
}
