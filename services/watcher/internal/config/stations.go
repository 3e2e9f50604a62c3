package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/airsight/airsight/services/watcher/internal/models"
)

var defaultStations = []models.Station{
	{ID: "connaught-place", Name: "Connaught Place", Lat: 28.6139, Lon: 77.2090, TopSource: "Traffic"},
	{ID: "noida-sector-62", Name: "Noida Sector 62", Lat: 28.5355, Lon: 77.3910, TopSource: "Industry"},
	{ID: "rohini", Name: "Rohini", Lat: 28.7041, Lon: 77.1025, TopSource: "Dust"},
	{ID: "saket", Name: "Saket", Lat: 28.5672, Lon: 77.2100, TopSource: "Traffic"},
	{ID: "ghaziabad", Name: "Ghaziabad", Lat: 28.6692, Lon: 77.4538, TopSource: "Industry"},
	{ID: "gurugram", Name: "Gurugram", Lat: 28.4595, Lon: 77.0266, TopSource: "Traffic"},
}

// LoadStations reads the station catalog from path, or returns the
// built-in Delhi NCR stations when path is empty.
func LoadStations(path string) ([]models.Station, error) {
	if path == "" {
		out := make([]models.Station, len(defaultStations))
		copy(out, defaultStations)
		return out, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stations file: %w", err)
	}
	return ParseStations(raw)
}

// ParseStations decodes and validates a YAML station catalog.
func ParseStations(raw []byte) ([]models.Station, error) {
	var cat models.Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}
	if len(cat.Stations) == 0 {
		return nil, fmt.Errorf("stations file lists no stations")
	}

	seen := make(map[string]bool, len(cat.Stations))
	for i, st := range cat.Stations {
		st.ID = strings.TrimSpace(st.ID)
		if st.ID == "" {
			return nil, fmt.Errorf("station %d: id is required", i)
		}
		if seen[st.ID] {
			return nil, fmt.Errorf("station %s: duplicate id", st.ID)
		}
		if st.Lat < -90 || st.Lat > 90 || st.Lon < -180 || st.Lon > 180 {
			return nil, fmt.Errorf("station %s: coordinates out of range", st.ID)
		}
		seen[st.ID] = true
		cat.Stations[i] = st
	}
	return cat.Stations, nil
}
