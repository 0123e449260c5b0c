package implementation

import (
	"context"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/mapper"
	"docuchat-be/internal/model"
	"docuchat-be/internal/repository/contract"
	"docuchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChunkMappingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewChunkMappingRepository(db *gorm.DB) contract.ChunkMappingRepository {
	return &ChunkMappingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *ChunkMappingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkMappingRepositoryImpl) CreateAll(ctx context.Context, mappings []*entity.ChunkMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	models := make([]*model.ChunkMapping, len(mappings))
	for i, mp := range mappings {
		models[i] = r.mapper.MappingToModel(mp)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*mappings[i] = *r.mapper.MappingToEntity(m)
	}
	return nil
}

func (r *ChunkMappingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChunkMapping, error) {
	var models []*model.ChunkMapping
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChunkMapping, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MappingToEntity(m)
	}
	return entities, nil
}

func (r *ChunkMappingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChunkMapping{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
