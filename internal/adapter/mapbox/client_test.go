package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken         = "test-token"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		token:      testToken,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_ReverseGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Mapbox expects lon,lat in the path.
		assert.Contains(t, r.URL.Path, "88.528600,27.508800")
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))

		resp := response{
			Features: []feature{
				{
					ID:        "place.8812",
					Center:    []float64{88.5286, 27.5088},
					PlaceName: "Mangan, North Sikkim, Sikkim, India",
					Text:      "Mangan",
					Relevance: 0.98,
					Context: []featureCtx{
						{ID: "district.3301", Text: "North Sikkim"},
						{ID: "region.77", Text: "Sikkim"},
					},
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.ReverseGeocode(context.Background(), 27.5088, 88.5286)
	require.NoError(t, err)

	assert.Equal(t, 27.5088, result.Lat)
	assert.Equal(t, 88.5286, result.Lon)
	assert.Equal(t, "Mangan, North Sikkim, Sikkim, India", result.FormattedAddress)
	assert.Equal(t, "Mangan", result.PlaceName)
	assert.Equal(t, "North Sikkim", result.District)
	assert.Equal(t, 0.98, result.Confidence)
}

func TestFeatureDistrict(t *testing.T) {
	tests := []struct {
		name string
		f    feature
		want string
	}{
		{"district match", feature{ID: "district.1", Text: "Gangtok"}, "Gangtok"},
		{"from context", feature{ID: "locality.2", Text: "Singtam", Context: []featureCtx{{ID: "district.9", Text: "Gangtok"}}}, "Gangtok"},
		{"region only", feature{ID: "place.3", Text: "Lachen", Context: []featureCtx{{ID: "region.4", Text: "Sikkim"}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.district())
		})
	}
}

func TestClient_ReverseGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{}}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.ReverseGeocode(context.Background(), 0.5, 0.5)
	require.NoError(t, err)
	assert.Equal(t, float64(0), result.Lat)
	assert.Empty(t, result.FormattedAddress)
}

func TestClient_ReverseGeocode_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not Authorized"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.token = "bad-token"

	_, err := c.ReverseGeocode(context.Background(), 27.5088, 88.5286)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_ReverseGeocode_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"features":`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ReverseGeocode(context.Background(), 27.5, 88.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_ReverseGeocode_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.ReverseGeocode(context.Background(), 27.5088, 88.5286)
	require.Error(t, err)
}
