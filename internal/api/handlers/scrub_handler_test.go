package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recalibr/recalibr/backend/internal/adapters/providers/vin"
	"github.com/recalibr/recalibr/backend/internal/adapters/refdata"
	"github.com/recalibr/recalibr/backend/internal/application/services"
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/pkg/utils"
)

func testConfigDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "config")
}

func newTestRefData(t *testing.T) *refdata.FileProvider {
	t.Helper()
	dir := testConfigDir()
	provider, err := refdata.NewFileProvider(refdata.Paths{
		Triggers:          filepath.Join(dir, "calibration_triggers.json"),
		SystemAliases:     filepath.Join(dir, "system_aliases.json"),
		IntroductionYears: filepath.Join(dir, "adas_introduction_years.json"),
		CalibrationTypes:  filepath.Join(dir, "brand_calibration_types.json"),
	})
	require.NoError(t, err)
	return provider
}

func newTestScrubService(t *testing.T) *services.ScrubService {
	t.Helper()
	refData := newTestRefData(t)
	normalizer := utils.NewSystemNormalizer(refData.AliasSets())
	typeService := services.NewCalibrationTypeService(refData)
	return services.NewScrubService(
		services.NewEstimateParserService(),
		services.NewEquipmentService(refData, normalizer),
		services.NewTriggerService(refData, normalizer, typeService),
		services.NewReconciliationService(normalizer, typeService),
		normalizer,
		vin.NewDecoder(),
	)
}

// memoryCache is an in-process CacheProvider for handler tests.
type memoryCache struct {
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if data, ok := c.store[key]; ok {
		return data, nil
	}
	return nil, errCacheMiss
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.store[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.store[key]
	return ok, nil
}

var errCacheMiss = &cacheMissError{}

type cacheMissError struct{}

func (*cacheMissError) Error() string { return "cache miss" }

func postScrub(t *testing.T, handler *ScrubHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/scrub", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Scrub(rec, req)
	return rec
}

func TestScrub_MissingEstimateText(t *testing.T) {
	handler := NewScrubHandler(newTestScrubService(t), nil, 0, nil)

	rec := postScrub(t, handler, `{"brand":"toyota","year":2021}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "estimate_text is required", body["error"])
}

func TestScrub_MalformedBody(t *testing.T) {
	handler := NewScrubHandler(newTestScrubService(t), nil, 0, nil)

	rec := postScrub(t, handler, `{"estimate_text": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid request body", body["error"])
}

func TestScrub_Success(t *testing.T) {
	handler := NewScrubHandler(newTestScrubService(t), nil, 0, nil)

	payload := entities.ScrubRequest{
		EstimateText:        "R&R Windshield",
		Brand:               "toyota",
		Year:                2021,
		SecondaryReportText: "Front Camera Calibration - Static",
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := postScrub(t, handler, string(data))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result entities.ScrubResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Empty(t, result.Error)
	assert.Equal(t, entities.StatusOK, result.Summary.Status)
	require.Len(t, result.Billable, 1)
	assert.Equal(t, entities.SystemFrontCamera, result.Billable[0].System)
}

func TestScrub_CachesRepeatedRequests(t *testing.T) {
	cache := newMemoryCache()
	handler := NewScrubHandler(newTestScrubService(t), cache, 300, nil)

	body := `{"estimate_text":"R&R Windshield","brand":"toyota","year":2021,"secondary_report_text":"Front Camera Calibration - Static"}`

	first := postScrub(t, handler, body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Len(t, cache.store, 1, "successful scrub should populate the cache")

	second := postScrub(t, handler, body)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b entities.ScrubResult
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	b.GeneratedAt = a.GeneratedAt
	assert.Equal(t, a, b, "cached response should match the computed one")
}

func TestScrub_CacheKeyDistinguishesRequests(t *testing.T) {
	a := scrubCacheKey(entities.ScrubRequest{EstimateText: "R&R Windshield", Brand: "toyota"})
	b := scrubCacheKey(entities.ScrubRequest{EstimateText: "R&R Windshield", Brand: "honda"})
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "scrub:"))
}

func TestScrub_OversizedBodyRejected(t *testing.T) {
	handler := NewScrubHandler(newTestScrubService(t), nil, 0, nil)

	var buf bytes.Buffer
	buf.WriteString(`{"estimate_text":"`)
	for buf.Len() < maxEstimateBytes+1024 {
		buf.WriteString("R&R Windshield\n")
	}
	buf.WriteString(`"}`)

	rec := postScrub(t, handler, buf.String())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSystems(t *testing.T) {
	handler := NewReferenceHandler(newTestRefData(t))

	req := httptest.NewRequest(http.MethodGet, "/api/reference/systems", nil)
	rec := httptest.NewRecorder()
	handler.ListSystems(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Systems []struct {
			System  entities.CalibrationSystem `json:"system"`
			Aliases []string                   `json:"aliases"`
		} `json:"systems"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, len(entities.ValidSystems()), body.Count)
	assert.Len(t, body.Systems, body.Count)
}

func TestListTriggers(t *testing.T) {
	handler := NewReferenceHandler(newTestRefData(t))

	req := httptest.NewRequest(http.MethodGet, "/api/reference/triggers", nil)
	rec := httptest.NewRecorder()
	handler.ListTriggers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Triggers []entities.CalibrationTrigger `json:"triggers"`
		Count    int                           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Triggers)
	assert.Equal(t, len(body.Triggers), body.Count)
}
