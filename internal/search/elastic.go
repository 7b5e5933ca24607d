// Package search реализует коллаборатора поискового индекса поверх
// Elasticsearch: зеркалирование документов каталога и полнотекстовый
// поиск с бустом по жанру.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/kinobilet/movie-catalog/internal/models"
)

// Elastic — клиент поискового индекса фильмов.
type Elastic struct {
	client *elasticsearch.Client
	index  string
	log    *slog.Logger
}

// New создает клиента Elasticsearch для заданного индекса.
func New(addresses []string, index string, log *slog.Logger) (*Elastic, error) {
	const op = "search.New"

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Elastic{
		client: client,
		index:  index,
		log:    log,
	}, nil
}

// IndexMovie индексирует фильм под его идентификатором.
func (e *Elastic) IndexMovie(ctx context.Context, movie *models.Movie) error {
	const op = "search.IndexMovie"

	body, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := e.client.Index(e.index, bytes.NewReader(body),
		e.client.Index.WithDocumentID(movie.ID.Hex()),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return fmt.Errorf("%s: %s", op, res.Status())
	}
	return nil
}

// UpdateMovie обновляет документ фильма в индексе.
func (e *Elastic) UpdateMovie(ctx context.Context, movie *models.Movie) error {
	const op = "search.UpdateMovie"

	body, err := json.Marshal(map[string]any{"doc": movie})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := e.client.Update(e.index, movie.ID.Hex(), bytes.NewReader(body),
		e.client.Update.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return fmt.Errorf("%s: %s", op, res.Status())
	}
	return nil
}

// DeleteMovie удаляет документ фильма из индекса.
func (e *Elastic) DeleteMovie(ctx context.Context, movieID string) error {
	const op = "search.DeleteMovie"

	res, err := e.client.Delete(e.index, movieID,
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return fmt.Errorf("%s: %s", op, res.Status())
	}
	return nil
}

// SearchMovies выполняет нечеткий полнотекстовый поиск по name и description.
//
// Совпадение жанра с фильтром добавляет к тексту документа бонусный балл
// (term с boost 2 в should, баллы складываются), поэтому документы нужного
// жанра ранжируются не ниже равных по тексту документов других жанров.
func (e *Elastic) SearchMovies(ctx context.Context, query, genre string) ([]models.Movie, error) {
	const op = "search.SearchMovies"

	boolQuery := map[string]any{
		"must": []any{
			map[string]any{
				"multi_match": map[string]any{
					"query":     query,
					"fields":    []string{"name", "description"},
					"fuzziness": "AUTO",
				},
			},
		},
	}
	if genre != "" {
		boolQuery["should"] = []any{
			map[string]any{
				"term": map[string]any{
					"genre": map[string]any{
						"value": genre,
						"boost": 2,
					},
				},
			},
		}
	}

	body, err := json.Marshal(map[string]any{
		"query": map[string]any{"bool": boolQuery},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("%s: %s", op, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Movie `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Movie, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}
