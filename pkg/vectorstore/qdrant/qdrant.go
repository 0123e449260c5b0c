package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"docuchat-be/internal/entity"
	"docuchat-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// Store is a minimal REST client to Qdrant using cosine distance.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

var _ vectorstore.VectorStore = (*Store)(nil)

func (s *Store) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension: %d", dimension)
	}

	// Probe first; PUT on an existing collection with a different schema errors.
	exists, err := s.collectionExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil)
}

func (s *Store) collectionExists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return false, err
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, fmt.Errorf("qdrant collection probe failed: %s", resp.Status)
	default:
		return true, nil
	}
}

func (s *Store) Upsert(ctx context.Context, texts []string, vectors [][]float32, metadatas []map[string]interface{}) ([]string, error) {
	if len(texts) != len(vectors) || len(texts) != len(metadatas) {
		return nil, fmt.Errorf("texts, vectors and metadatas length mismatch")
	}

	ids := make([]string, len(texts))
	points := make([]map[string]interface{}, len(texts))
	for i := range texts {
		ids[i] = uuid.NewString()
		points[i] = map[string]interface{}{
			"id":     ids[i],
			"vector": vectors[i],
			"payload": map[string]interface{}{
				"text":     texts[i],
				"metadata": metadatas[i],
			},
		}
	}

	body := map[string]interface{}{"points": points}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	if err := s.doJSON(ctx, http.MethodPut, url, body, nil); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]entity.ContextEntry, error) {
	if topK <= 0 {
		topK = 5
	}

	body := map[string]interface{}{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			Id      interface{}            `json:"id"`
			Score   float32                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.doJSON(ctx, http.MethodPost, url, body, &resp); err != nil {
		return nil, err
	}

	entries := make([]entity.ContextEntry, 0, len(resp.Result))
	for _, r := range resp.Result {
		entry := entity.ContextEntry{
			Id:    fmt.Sprintf("%v", r.Id),
			Score: r.Score,
		}
		if text, ok := r.Payload["text"].(string); ok {
			entry.Text = text
		}
		if metadata, ok := r.Payload["metadata"].(map[string]interface{}); ok {
			entry.Metadata = metadata
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]interface{}{"points": ids}
	url := fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection)
	return s.doJSON(ctx, http.MethodPost, url, body, nil)
}

func (s *Store) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *Store) doJSON(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
