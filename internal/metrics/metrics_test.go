package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/degrees/internal/search"
)

func TestCollector_ObserveSearch(t *testing.T) {
	c := New()

	c.ObserveSearch(search.Stats{Strategy: search.BreadthFirst, Outcome: search.OutcomeFound, Expanded: 12, Degrees: 2, Elapsed: time.Millisecond})
	c.ObserveSearch(search.Stats{Strategy: search.BreadthFirst, Outcome: search.OutcomeNoPath, Expanded: 3})
	c.ObserveSearch(search.Stats{Strategy: search.BreadthFirst, Outcome: search.OutcomeFound, Expanded: 1, Degrees: 1})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.searches.WithLabelValues("bfs", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.searches.WithLabelValues("bfs", "no_path")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.searchDegrees))
}

func TestCollector_SetDataset(t *testing.T) {
	c := New()
	c.SetDataset(3, 2, 5)
	assert.Equal(t, 5.0, testutil.ToFloat64(c.datasetSize.WithLabelValues("participations")))
}

func TestCollector_MiddlewareAndHandler(t *testing.T) {
	c := New()

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/people/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", c.Handler())

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/people/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("/people/{id}", http.MethodGet, "404")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "degrees_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
