package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/indicator-service/internal/metrics"
	"github.com/aristath/indicator-service/internal/modules/indicators"
	"github.com/aristath/indicator-service/internal/transport"
)

func setupRouter(t *testing.T, maxBodyBytes int64) (chi.Router, *metrics.Metrics) {
	t.Helper()
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	m := metrics.New()
	handler := NewHandler(indicators.NewService(0, logger), m, maxBodyBytes, logger)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router, m
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response transport.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response.Detail
}

func TestHandleIndicator(t *testing.T) {
	router, m := setupRouter(t, 0)

	w := postJSON(t, router, "/indicator", map[string]interface{}{
		"indicator": "SMA",
		"prices":    []float64{1, 2, 3, 4, 5},
		"params":    map[string]interface{}{"period": 5},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"values":[null,null,null,null,3]}`, w.Body.String())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndicatorRequests.WithLabelValues("SMA", "close-only", metrics.OutcomeOK)))
}

func TestHandleIndicator_ClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
		labels []string
	}{
		{
			name:   "unsupported indicator",
			body:   `{"indicator":"FOO","prices":[1,2,3]}`,
			detail: "Unsupported close-only indicator 'FOO'",
			labels: []string{"unsupported", "close-only", metrics.OutcomeClientError},
		},
		{
			name:   "single price with unknown name",
			body:   `{"indicator":"FOO","prices":[1]}`,
			detail: "prices must contain at least 2 values, got 1",
			labels: []string{"unsupported", "close-only", metrics.OutcomeClientError},
		},
		{
			name:   "unsupported combination",
			body:   `{"indicator":"RSI","high":[3,4],"low":[1,2],"close":[2,3]}`,
			detail: "Unsupported HLC indicator 'RSI'",
			labels: []string{"RSI", "HLC", metrics.OutcomeClientError},
		},
		{
			name:   "missing fields",
			body:   `{"indicator":"RSI"}`,
			detail: "Malformed request: missing required fields",
			labels: []string{"RSI", "unknown", metrics.OutcomeClientError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupRouter(t, 0)

			req := httptest.NewRequest("POST", "/indicator", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.detail, decodeDetail(t, w))
			assert.Equal(t, 1.0, testutil.ToFloat64(m.IndicatorRequests.WithLabelValues(tt.labels...)))
		})
	}
}

func TestHandleIndicator_InvalidBody(t *testing.T) {
	router, m := setupRouter(t, 0)

	req := httptest.NewRequest("POST", "/indicator", strings.NewReader(`{"indicator":`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.HasPrefix(decodeDetail(t, w), "Malformed request: invalid body"))

	// Rejected before dispatch, nothing recorded
	assert.Equal(t, 0, testutil.CollectAndCount(m.IndicatorRequests))
}

func TestHandleIndicator_NullElement(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"prices", `{"indicator":"CUMULATIVE_RETURN","prices":[100,null,120]}`, "array element 1 is null; values must be numbers"},
		{"volume", `{"indicator":"OBV","close":[1,2,3],"volume":[null,5,6]}`, "array element 0 is null; values must be numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupRouter(t, 0)

			req := httptest.NewRequest("POST", "/indicator", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.detail, decodeDetail(t, w))
			assert.Equal(t, 0, testutil.CollectAndCount(m.IndicatorRequests))
		})
	}
}

func TestHandleIndicator_NullElementMsgpack(t *testing.T) {
	router, _ := setupRouter(t, 0)

	body, err := msgpack.Marshal(map[string]interface{}{
		"indicator": "CUMULATIVE_RETURN",
		"prices":    []interface{}{100.0, nil, 120.0},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/indicator", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/msgpack")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "array element 1 is null; values must be numbers", decodeDetail(t, w))
}

func TestHandleIndicator_BodyTooLarge(t *testing.T) {
	router, _ := setupRouter(t, 32)

	prices := make([]float64, 100)
	for i := range prices {
		prices[i] = float64(100 + i)
	}
	w := postJSON(t, router, "/indicator", map[string]interface{}{"indicator": "RSI", "prices": prices})

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "request body exceeds 32 bytes", decodeDetail(t, w))
}

func TestHandleIndicator_Msgpack(t *testing.T) {
	router, _ := setupRouter(t, 0)

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	require.NoError(t, enc.Encode(map[string]interface{}{
		"indicator": "CURRENT_PRICE",
		"prices":    []float64{10, 11, 12.5},
	}))

	req := httptest.NewRequest("POST", "/indicator", &buf)
	req.Header.Set("Content-Type", "application/msgpack")
	req.Header.Set("Accept", "application/msgpack")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/msgpack", w.Header().Get("Content-Type"))

	var response IndicatorResponse
	dec := msgpack.NewDecoder(w.Body)
	dec.SetCustomStructTag("json")
	require.NoError(t, dec.Decode(&response))

	require.Len(t, response.Values, 3)
	for i, want := range []float64{10, 11, 12.5} {
		require.NotNil(t, response.Values[i])
		assert.Equal(t, want, *response.Values[i])
	}
}

func TestHandleRSI(t *testing.T) {
	router, _ := setupRouter(t, 0)

	values := make([]float64, 20)
	for i := range values {
		values[i] = 100 + float64(i%3)
	}
	w := postJSON(t, router, "/rsi", map[string]interface{}{"values": values})

	require.Equal(t, http.StatusOK, w.Code)

	var response RSIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.RSI, 20)

	// Default period of 14
	for i := 0; i < 14; i++ {
		assert.Nil(t, response.RSI[i], "index %d", i)
	}
	for i := 14; i < 20; i++ {
		assert.NotNil(t, response.RSI[i], "index %d", i)
	}
}

func TestHandleRSI_ShorterThanPeriod(t *testing.T) {
	router, _ := setupRouter(t, 0)

	w := postJSON(t, router, "/rsi", map[string]interface{}{"values": []float64{1, 2, 3, 4, 5}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rsi":[null,null,null,null,null]}`, w.Body.String())
}

func TestHandleRSI_Errors(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"single value", map[string]interface{}{"values": []float64{1}}},
		{"period below two", map[string]interface{}{"values": []float64{1, 2, 3}, "period": 1}},
		{"null element", map[string]interface{}{"values": []interface{}{1.0, nil, 3.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupRouter(t, 0)
			w := postJSON(t, router, "/rsi", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decodeDetail(t, w))
		})
	}
}

func TestHandleCatalogue(t *testing.T) {
	router, _ := setupRouter(t, 0)

	req := httptest.NewRequest("GET", "/indicators", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response CatalogueResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response.Indicators["close-only"], "RSI")
	assert.Contains(t, response.Indicators["HLC"], "ADX")
	assert.Contains(t, response.Indicators["HLCV"], "MFI")
	assert.Equal(t, []string{"OBV"}, response.Indicators["Close+Volume"])
}
