// Package search indexes todo cards in Elasticsearch for full-text lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

type TodoCardIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewTodoCardIndex(es *elasticsearch.Client, index string) *TodoCardIndex {
	return &TodoCardIndex{es: es, index: index}
}

type cardDocument struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Completed   bool   `json:"completed"`
	UserID      int64  `json:"user_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toDocument(c *entity.TodoCard) cardDocument {
	return cardDocument{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    string(c.Category),
		Completed:   c.Completed,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func (i *TodoCardIndex) Index(ctx context.Context, c *entity.TodoCard) error {
	b, err := json.Marshal(toDocument(c))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: strconv.FormatInt(c.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	return i.do(ctx, req)
}

func (i *TodoCardIndex) Delete(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: strconv.FormatInt(id, 10)}
	return i.do(ctx, req)
}

func (i *TodoCardIndex) do(ctx context.Context, req esapi.Request) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch: %s", res.Status())
	}
	return nil
}

// searchQuery matches q against title (boosted) and description.
func searchQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size":    size,
		"_source": false,
	}
}

// Search returns matching card ids in relevance order.
func (i *TodoCardIndex) Search(ctx context.Context, q string, size int) ([]int64, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	b, err := json.Marshal(searchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := i.es.Search(
		i.es.Search.WithContext(c),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var _ application.TodoCardIndexer = (*TodoCardIndex)(nil)

// Mapping is the index definition for todo card documents.
const Mapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "category":    {"type": "keyword"},
      "completed":   {"type": "boolean"},
      "user_id":     {"type": "long"},
      "created_at":  {"type": "date"},
      "updated_at":  {"type": "date"}
    }
  }
}`
