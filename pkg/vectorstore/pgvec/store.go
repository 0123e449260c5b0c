package pgvec

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docuchat-be/internal/entity"
	"docuchat-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Store keeps vectors in Postgres itself via the pgvector extension, as an
// alternative to running a separate Qdrant instance. One table per
// collection, cosine distance via the <=> operator. Every call is bounded
// by the store's timeout; callers' contexts often carry no deadline.
type Store struct {
	db         *gorm.DB
	collection string
	timeout    time.Duration
}

func NewStore(db *gorm.DB, collection string, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		db:         db,
		collection: collection,
		timeout:    timeout,
	}
}

func (s *Store) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

var _ vectorstore.VectorStore = (*Store)(nil)

func (s *Store) tableName() string {
	return fmt.Sprintf("vectors_%s", s.collection)
}

func (s *Store) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension: %d", dimension)
	}

	ctx, cancel := s.boundedContext(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
		return err
	}

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id uuid PRIMARY KEY,
		content text NOT NULL,
		metadata jsonb,
		embedding vector(%d) NOT NULL
	)`, s.tableName(), dimension)
	return s.db.WithContext(ctx).Exec(createSQL).Error
}

func (s *Store) Upsert(ctx context.Context, texts []string, vectors [][]float32, metadatas []map[string]interface{}) ([]string, error) {
	if len(texts) != len(vectors) || len(texts) != len(metadatas) {
		return nil, fmt.Errorf("texts, vectors and metadatas length mismatch")
	}

	ctx, cancel := s.boundedContext(ctx)
	defer cancel()

	ids := make([]string, len(texts))
	insertSQL := fmt.Sprintf(
		`INSERT INTO %s (id, content, metadata, embedding) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content, metadata = EXCLUDED.metadata, embedding = EXCLUDED.embedding`,
		s.tableName(),
	)

	for i := range texts {
		ids[i] = uuid.NewString()
		metadataJSON, err := json.Marshal(metadatas[i])
		if err != nil {
			return nil, err
		}
		err = s.db.WithContext(ctx).
			Exec(insertSQL, ids[i], texts[i], string(metadataJSON), pgvector.NewVector(vectors[i])).Error
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]entity.ContextEntry, error) {
	if topK <= 0 {
		topK = 5
	}

	ctx, cancel := s.boundedContext(ctx)
	defer cancel()

	searchSQL := fmt.Sprintf(
		`SELECT id, content, metadata, 1 - (embedding <=> ?) AS score
		 FROM %s ORDER BY embedding <=> ? LIMIT ?`,
		s.tableName(),
	)

	query := pgvector.NewVector(vector)
	var rows []struct {
		Id       string
		Content  string
		Metadata []byte
		Score    float32
	}
	if err := s.db.WithContext(ctx).Raw(searchSQL, query, query, topK).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]entity.ContextEntry, 0, len(rows))
	for _, row := range rows {
		entry := entity.ContextEntry{
			Id:    row.Id,
			Text:  row.Content,
			Score: row.Score,
		}
		if len(row.Metadata) > 0 {
			_ = json.Unmarshal(row.Metadata, &entry.Metadata)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := s.boundedContext(ctx)
	defer cancel()

	deleteSQL := fmt.Sprintf(`DELETE FROM %s WHERE id IN ?`, s.tableName())
	return s.db.WithContext(ctx).Exec(deleteSQL, ids).Error
}
