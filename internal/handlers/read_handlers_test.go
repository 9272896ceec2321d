package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"io.globetrek.app/internal/journal"
	getmodels "io.globetrek.app/internal/models/get_journal"
	journalmodels "io.globetrek.app/internal/models/journal"
	listmodels "io.globetrek.app/internal/models/list_journals"
	statsmodels "io.globetrek.app/internal/models/travel_stats"
	"io.globetrek.app/internal/stats"
)

type fakeJournalReader struct {
	entries []journalmodels.JournalEntry
	listErr error
	cached  map[string]stats.TravelStats
}

func newFakeJournalReader(entries ...journalmodels.JournalEntry) *fakeJournalReader {
	return &fakeJournalReader{
		entries: entries,
		cached:  make(map[string]stats.TravelStats),
	}
}

func (f *fakeJournalReader) GetByID(ctx context.Context, id, ownerUID string) (*journalmodels.JournalEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			if f.entries[i].OwnerID != ownerUID {
				return nil, journal.ErrForbidden
			}
			return &f.entries[i], nil
		}
	}
	return nil, journal.ErrNotFound
}

func (f *fakeJournalReader) ListByOwner(ctx context.Context, ownerUID string) ([]journalmodels.JournalEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var owned []journalmodels.JournalEntry
	for _, entry := range f.entries {
		if entry.OwnerID == ownerUID {
			owned = append(owned, entry)
		}
	}
	return owned, nil
}

func (f *fakeJournalReader) CachedStats(ctx context.Context, ownerUID string) (*stats.TravelStats, bool) {
	cached, ok := f.cached[ownerUID]
	if !ok {
		return nil, false
	}
	return &cached, true
}

func (f *fakeJournalReader) CacheStats(ctx context.Context, ownerUID string, travelStats stats.TravelStats) {
	f.cached[ownerUID] = travelStats
}

func newReadTestRouter(reader *fakeJournalReader, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewJournalHandler(nil, reader, zap.NewNop().Sugar())

	router := gin.New()
	authStub := func(c *gin.Context) {
		if uid != "" {
			c.Set("uid", uid)
		}
		c.Next()
	}
	router.POST("/journals/get", authStub, handler.GetJournal)
	router.POST("/journals/list", authStub, handler.ListJournals)
	router.POST("/journals/stats", authStub, handler.GetTravelStats)
	return router
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleEntry(id, owner, location string, mediaURLs ...string) journalmodels.JournalEntry {
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	return journalmodels.JournalEntry{
		ID:          id,
		OwnerID:     owner,
		Title:       "Trip " + id,
		Location:    location,
		Date:        time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		Description: "notes",
		MediaURLs:   mediaURLs,
		CreatedAt:   time.Date(2025, 5, 21, 9, 0, 0, 0, time.UTC),
	}
}

func TestGetJournalFound(t *testing.T) {
	reader := newFakeJournalReader(sampleEntry("entry-1", "user-1", "Kyoto, Japan", "https://m/a.jpg"))
	router := newReadTestRouter(reader, "user-1")

	rec := postJSON(router, "/journals/get", getmodels.GetJournalRequest{JournalID: "entry-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp getmodels.GetJournalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "entry-1", resp.Journal.ID)
	assert.Equal(t, []string{"https://m/a.jpg"}, resp.Journal.MediaURLs)
}

func TestGetJournalNotFound(t *testing.T) {
	router := newReadTestRouter(newFakeJournalReader(), "user-1")

	rec := postJSON(router, "/journals/get", getmodels.GetJournalRequest{JournalID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJournalOtherOwnerLooksMissing(t *testing.T) {
	reader := newFakeJournalReader(sampleEntry("entry-1", "user-1", "Kyoto, Japan"))
	router := newReadTestRouter(reader, "intruder")

	rec := postJSON(router, "/journals/get", getmodels.GetJournalRequest{JournalID: "entry-1"})
	// Another user's entry is indistinguishable from a missing one
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJournalMissingID(t *testing.T) {
	router := newReadTestRouter(newFakeJournalReader(), "user-1")

	rec := postJSON(router, "/journals/get", getmodels.GetJournalRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Journal ID is required")
}

func TestListJournalsReturnsOwnEntries(t *testing.T) {
	reader := newFakeJournalReader(
		sampleEntry("entry-1", "user-1", "Paris, France"),
		sampleEntry("entry-2", "user-1", "Lyon, France"),
		sampleEntry("entry-3", "someone-else", "Oslo, Norway"),
	)
	router := newReadTestRouter(reader, "user-1")

	rec := postJSON(router, "/journals/list", struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listmodels.ListJournalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Journals, 2)
	assert.Equal(t, "entry-1", resp.Journals[0].ID)
	assert.Equal(t, "entry-2", resp.Journals[1].ID)
}

func TestListJournalsEmpty(t *testing.T) {
	router := newReadTestRouter(newFakeJournalReader(), "user-1")

	rec := postJSON(router, "/journals/list", struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listmodels.ListJournalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Journals)
	assert.Empty(t, resp.Journals)
}

func TestListJournalsUnauthenticated(t *testing.T) {
	router := newReadTestRouter(newFakeJournalReader(), "")

	rec := postJSON(router, "/journals/list", struct{}{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetTravelStatsComputesAndCaches(t *testing.T) {
	reader := newFakeJournalReader(
		sampleEntry("entry-1", "user-1", "Paris, France", "a", "b"),
		sampleEntry("entry-2", "user-1", "Lyon, France", "c"),
	)
	router := newReadTestRouter(reader, "user-1")

	rec := postJSON(router, "/journals/stats", struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsmodels.TravelStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, stats.TravelStats{Countries: 1, Cities: 2, Journals: 2, Photos: 3}, resp.Stats)

	// The computed result landed in the cache
	cached, ok := reader.CachedStats(context.Background(), "user-1")
	require.True(t, ok)
	assert.Equal(t, resp.Stats, *cached)
}

func TestGetTravelStatsServedFromCache(t *testing.T) {
	reader := newFakeJournalReader()
	reader.cached["user-1"] = stats.TravelStats{Countries: 7, Cities: 9, Journals: 11, Photos: 40}
	// A list call would fail, proving the cache answered
	reader.listErr = errors.New("database down")
	router := newReadTestRouter(reader, "user-1")

	rec := postJSON(router, "/journals/stats", struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsmodels.TravelStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Stats.Countries)
	assert.Equal(t, 40, resp.Stats.Photos)
}

func TestGetTravelStatsListFailure(t *testing.T) {
	reader := newFakeJournalReader()
	reader.listErr = errors.New("database down")
	router := newReadTestRouter(reader, "user-1")

	rec := postJSON(router, "/journals/stats", struct{}{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to compute travel stats")
}
