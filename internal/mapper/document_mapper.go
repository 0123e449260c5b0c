package mapper

import (
	"encoding/json"
	"time"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) DocumentToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:         d.Id,
		Title:      d.Title,
		SourcePath: d.SourcePath,
		Checksum:   d.Checksum,
		Version:    d.Version,
		Metadata:   jsonToMap(d.Metadata),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *DocumentMapper) DocumentToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:         d.Id,
		Title:      d.Title,
		SourcePath: d.SourcePath,
		Checksum:   d.Checksum,
		Version:    d.Version,
		Metadata:   mapToJSON(d.Metadata),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *DocumentMapper) ChunkToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkOrder: c.ChunkOrder,
		Content:    c.Content,
		Metadata:   jsonToMap(c.Metadata),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}
	return &model.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkOrder: c.ChunkOrder,
		Content:    c.Content,
		Metadata:   mapToJSON(c.Metadata),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentMapper) MappingToEntity(c *model.ChunkMapping) *entity.ChunkMapping {
	if c == nil {
		return nil
	}
	return &entity.ChunkMapping{
		Id:        c.Id,
		ChunkId:   c.ChunkId,
		PointId:   c.PointId,
		CreatedAt: c.CreatedAt,
	}
}

func (m *DocumentMapper) MappingToModel(c *entity.ChunkMapping) *model.ChunkMapping {
	if c == nil {
		return nil
	}
	return &model.ChunkMapping{
		Id:        c.Id,
		ChunkId:   c.ChunkId,
		PointId:   c.PointId,
		CreatedAt: c.CreatedAt,
	}
}

func jsonToMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func mapToJSON(in map[string]interface{}) datatypes.JSON {
	if in == nil {
		return nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
