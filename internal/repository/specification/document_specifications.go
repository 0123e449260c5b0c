package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChecksum struct {
	Checksum string
}

func (s ByChecksum) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("checksum = ?", s.Checksum)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByChunkID struct {
	ChunkID uuid.UUID
}

func (s ByChunkID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunk_id = ?", s.ChunkID)
}
