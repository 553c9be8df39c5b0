package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeBoard/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(model.PriceDataPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"Date":"1987-05-20T00:00:00.000","Price":18.63},{"Date":"1987-05-21T00:00:00.000","Price":18.45}]`))
	})
	mux.HandleFunc(model.ChangePointsPath(model.ProviderBayesian), func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"change_points":[1]}`))
	})
	mux.HandleFunc(model.ChangePointsPath(model.ProviderRupture), func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc(model.EventsPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetcher_RawSeries(t *testing.T) {
	srv := newTestServer(t)
	f := NewHTTPFetcher(srv.URL+"/", "", 0)

	series, err := f.FetchRawSeries(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "1987-05-20T00:00:00.000", series[0].Date)
	assert.Equal(t, 18.45, series[1].Price)
}

func TestHTTPFetcher_ChangePoints(t *testing.T) {
	srv := newTestServer(t)
	f := NewHTTPFetcher(srv.URL, "", 0)

	idx, err := f.FetchChangePoints(context.Background(), model.ProviderBayesian)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, idx)

	_, err = f.FetchChangePoints(context.Background(), model.ProviderRupture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPFetcher_DecodeError(t *testing.T) {
	srv := newTestServer(t)
	f := NewHTTPFetcher(srv.URL, "", 0)

	_, err := f.FetchEvents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(url, "", 0).FetchRawSeries(context.Background())
	assert.Error(t, err)
}
