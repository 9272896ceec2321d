package stats

import (
	"strings"

	journalmodels "io.globetrek.app/internal/models/journal"
)

// TravelStats summarizes a user's journal entries for the dashboard.
type TravelStats struct {
	Countries int `json:"countries"`
	Cities    int `json:"cities"`
	Journals  int `json:"journals"`
	Photos    int `json:"photos"`
}

// Aggregate computes travel stats from a user's entries in a single pass.
// Locations of the form "<city>, <country>" contribute the first segment
// as a city and the last as a country; a location with no comma counts as
// a city only. Matching is exact and case-sensitive, so "paris" and
// "Paris" are different cities.
func Aggregate(entries []journalmodels.JournalEntry) TravelStats {
	countries := make(map[string]struct{})
	cities := make(map[string]struct{})
	photos := 0

	for _, entry := range entries {
		city, country := splitLocation(entry.Location)
		if city != "" {
			cities[city] = struct{}{}
		}
		if country != "" {
			countries[country] = struct{}{}
		}
		photos += len(entry.MediaURLs)
	}

	return TravelStats{
		Countries: len(countries),
		Cities:    len(cities),
		Journals:  len(entries),
		Photos:    photos,
	}
}

// splitLocation parses a free-text location into (city, country). Segments
// are comma-separated and whitespace-trimmed; empty segments are dropped.
func splitLocation(location string) (city, country string) {
	var segments []string
	for _, segment := range strings.Split(location, ",") {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	switch len(segments) {
	case 0:
		return "", ""
	case 1:
		return segments[0], ""
	default:
		return segments[0], segments[len(segments)-1]
	}
}
