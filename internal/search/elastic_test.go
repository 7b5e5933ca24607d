package search

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kinobilet/movie-catalog/internal/models"
)

type capturedRequest struct {
	method string
	path   string
	body   map[string]any
}

// newTestElastic поднимает httptest-сервер вместо Elasticsearch и
// возвращает клиента, направленного на него.
func newTestElastic(t *testing.T, response string, captured *capturedRequest) *Elastic {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &captured.body))
		}

		// Клиент v8 проверяет, что отвечает настоящий Elasticsearch.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	es, err := New([]string{srv.URL}, "films", logger)
	require.NoError(t, err)
	return es
}

func testMovie(t *testing.T) *models.Movie {
	t.Helper()
	id, err := primitive.ObjectIDFromHex("64f1c0d2a5b6c7d8e9f0a1b2")
	require.NoError(t, err)
	return &models.Movie{
		ID:    id,
		Name:  "Interstellar",
		Genre: "sci-fi",
	}
}

func TestElastic_IndexMovie(t *testing.T) {
	var captured capturedRequest
	es := newTestElastic(t, `{"result":"created"}`, &captured)

	err := es.IndexMovie(context.Background(), testMovie(t))
	require.NoError(t, err)

	assert.Equal(t, "/films/_doc/64f1c0d2a5b6c7d8e9f0a1b2", captured.path)
	assert.Equal(t, "Interstellar", captured.body["name"])
	assert.Equal(t, "64f1c0d2a5b6c7d8e9f0a1b2", captured.body["id"])
}

func TestElastic_UpdateMovie(t *testing.T) {
	var captured capturedRequest
	es := newTestElastic(t, `{"result":"updated"}`, &captured)

	err := es.UpdateMovie(context.Background(), testMovie(t))
	require.NoError(t, err)

	assert.Equal(t, "/films/_update/64f1c0d2a5b6c7d8e9f0a1b2", captured.path)
	doc, ok := captured.body["doc"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Interstellar", doc["name"])
}

func TestElastic_DeleteMovie(t *testing.T) {
	var captured capturedRequest
	es := newTestElastic(t, `{"result":"deleted"}`, &captured)

	err := es.DeleteMovie(context.Background(), "64f1c0d2a5b6c7d8e9f0a1b2")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, captured.method)
	assert.Equal(t, "/films/_doc/64f1c0d2a5b6c7d8e9f0a1b2", captured.path)
}

func TestElastic_SearchMovies_QueryShape(t *testing.T) {
	response := `{"hits":{"hits":[
		{"_source":{"id":"64f1c0d2a5b6c7d8e9f0a1b2","name":"Drama Night","genre":"drama"}},
		{"_source":{"id":"64f1c0d2a5b6c7d8e9f0a1b3","name":"Night Drama","genre":"action"}}
	]}}`

	var captured capturedRequest
	es := newTestElastic(t, response, &captured)

	got, err := es.SearchMovies(context.Background(), "drama night", "drama")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Drama Night", got[0].Name)
	assert.Equal(t, "64f1c0d2a5b6c7d8e9f0a1b2", got[0].ID.Hex())

	assert.Equal(t, "/films/_search", captured.path)

	boolQuery := captured.body["query"].(map[string]any)["bool"].(map[string]any)

	must := boolQuery["must"].([]any)
	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "drama night", multiMatch["query"])
	assert.Equal(t, []any{"name", "description"}, multiMatch["fields"])
	assert.Equal(t, "AUTO", multiMatch["fuzziness"])

	should := boolQuery["should"].([]any)
	require.Len(t, should, 1)
	term := should[0].(map[string]any)["term"].(map[string]any)["genre"].(map[string]any)
	assert.Equal(t, "drama", term["value"])
	assert.Equal(t, float64(2), term["boost"])
}

func TestElastic_SearchMovies_NoGenreFilter(t *testing.T) {
	var captured capturedRequest
	es := newTestElastic(t, `{"hits":{"hits":[]}}`, &captured)

	got, err := es.SearchMovies(context.Background(), "drama night", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	boolQuery := captured.body["query"].(map[string]any)["bool"].(map[string]any)
	_, hasShould := boolQuery["should"]
	assert.False(t, hasShould)
}

func TestElastic_SearchMovies_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	es, err := New([]string{srv.URL}, "films", logger)
	require.NoError(t, err)

	_, err = es.SearchMovies(context.Background(), "drama", "")
	require.Error(t, err)
}
