package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// OpenSearchIndex implements SearchIndex against an OpenSearch index
// shared by every tenant, with every document and query scoped by
// tenant_id the same way a SQL table would be.
type OpenSearchIndex struct {
	client *opensearch.Client
	index  string
}

// NewOpenSearchIndex wraps client for the named index.
func NewOpenSearchIndex(client *opensearch.Client, index string) *OpenSearchIndex {
	return &OpenSearchIndex{client: client, index: index}
}

type searchDoc struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	SKU         string    `json:"sku"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
}

func (s *OpenSearchIndex) Index(ctx context.Context, p *Product) error {
	doc := searchDoc{
		TenantID:    p.TenantID,
		SKU:         p.SKU,
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		Status:      string(p.Status),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog: marshal search doc: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      s.index,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("catalog: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("catalog: index product: %s", res.String())
	}
	return nil
}

func (s *OpenSearchIndex) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	req := opensearchapi.DeleteRequest{
		Index:      s.index,
		DocumentID: id.String(),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("catalog: delete indexed product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("catalog: delete indexed product: %s", res.String())
	}
	return nil
}

func (s *OpenSearchIndex) Search(ctx context.Context, tenantID uuid.UUID, query string, page, size int) ([]uuid.UUID, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}

	body := map[string]any{
		"from": (page - 1) * size,
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []map[string]any{
					{"term": map[string]any{"tenant_id": tenantID.String()}},
				},
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  query,
						"fields": []string{"title^2", "description", "sku", "tags"},
					},
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: marshal search query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(payload),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("catalog: search: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("catalog: decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, parsed.Hits.Total.Value, nil
}
