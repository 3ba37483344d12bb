package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lookup resolves product references for order enrichment. Ids that do not resolve are simply
// absent from the result.
type Lookup interface {
	ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Summary, error)
}

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func (r *GormRepo) ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Summary, error) {
	out := make(map[uuid.UUID]Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []Product
	if err := r.DB.WithContext(ctx).
		Select("id", "name", "price").
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("lookup products: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p.Summary()
	}
	return out, nil
}

// ListProducts returns every stored product ordered by name.
func (r *GormRepo) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Product{}).Count(&n).Error
	return n, err
}
