package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id         uuid.UUID
	Title      string
	SourcePath string
	Checksum   string
	Version    int
	Metadata   map[string]interface{}
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkOrder int
	Content    string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}

// ChunkMapping links a relational chunk row to its point in the vector store,
// so chunk content stays resolvable even if the index drops the point.
type ChunkMapping struct {
	Id        uuid.UUID
	ChunkId   uuid.UUID
	PointId   string
	CreatedAt time.Time
}
