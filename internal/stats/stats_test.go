package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	journalmodels "io.globetrek.app/internal/models/journal"
)

func entryAt(location string, mediaURLs ...string) journalmodels.JournalEntry {
	return journalmodels.JournalEntry{Location: location, MediaURLs: mediaURLs}
}

func TestAggregateEmpty(t *testing.T) {
	assert.Equal(t, TravelStats{}, Aggregate(nil))
	assert.Equal(t, TravelStats{}, Aggregate([]journalmodels.JournalEntry{}))
}

func TestAggregateCityAndCountry(t *testing.T) {
	got := Aggregate([]journalmodels.JournalEntry{entryAt("Kyoto, Japan")})
	assert.Equal(t, TravelStats{Countries: 1, Cities: 1, Journals: 1}, got)
}

func TestAggregateCityOnly(t *testing.T) {
	got := Aggregate([]journalmodels.JournalEntry{entryAt("Kyoto")})
	assert.Equal(t, TravelStats{Countries: 0, Cities: 1, Journals: 1}, got)
}

func TestAggregateSharedCountry(t *testing.T) {
	got := Aggregate([]journalmodels.JournalEntry{
		entryAt("Paris, France"),
		entryAt("Lyon, France"),
	})
	assert.Equal(t, TravelStats{Countries: 1, Cities: 2, Journals: 2}, got)
}

func TestAggregatePhotoCounts(t *testing.T) {
	got := Aggregate([]journalmodels.JournalEntry{
		entryAt("Paris, France", "a", "b", "c"),
		entryAt("Lyon, France"),
	})
	assert.Equal(t, 3, got.Photos)
	assert.Equal(t, 2, got.Journals)
}

func TestAggregateEmptyLocation(t *testing.T) {
	got := Aggregate([]journalmodels.JournalEntry{entryAt(""), entryAt("  ,  ")})
	assert.Equal(t, TravelStats{Journals: 2}, got)
}

func TestAggregateMiddleSegmentsIgnored(t *testing.T) {
	// First segment is the city, last is the country; anything between is
	// neither.
	got := Aggregate([]journalmodels.JournalEntry{entryAt("Brooklyn, New York, USA")})
	assert.Equal(t, TravelStats{Countries: 1, Cities: 1, Journals: 1}, got)
}

func TestAggregateCaseSensitive(t *testing.T) {
	got := Aggregate([]journalmodels.JournalEntry{
		entryAt("paris, france"),
		entryAt("Paris, France"),
	})
	assert.Equal(t, TravelStats{Countries: 2, Cities: 2, Journals: 2}, got)
}

func TestAggregateIdempotent(t *testing.T) {
	entries := []journalmodels.JournalEntry{
		entryAt("Kyoto, Japan", "a"),
		entryAt("Osaka, Japan", "b", "c"),
		entryAt("Kyoto"),
	}
	first := Aggregate(entries)
	second := Aggregate(entries)
	assert.Equal(t, first, second)
}
