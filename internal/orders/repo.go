package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrStale means the order changed between read and conditional update.
	ErrStale = errors.New("order was modified concurrently")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]Order, error)
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	CompareAndSetStatus(ctx context.Context, cur *Order, to Status, now time.Time) (*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// Create inserts the order together with its items.
func (r *GormRepo) Create(ctx context.Context, o *Order) error {
	if err := r.DB.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	var orders []Order
	if err := r.DB.WithContext(ctx).
		Preload("Items", itemsInOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *GormRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return r.get(r.DB.WithContext(ctx), id)
}

func (r *GormRepo) get(db *gorm.DB, id uuid.UUID) (*Order, error) {
	var o Order
	if err := db.Preload("Items", itemsInOrder).Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// CompareAndSetStatus moves cur to status `to` only if the stored row still has cur's version and
// status. Zero rows affected means another writer got there first (or the order is gone) and is
// reported as ErrStale; the caller decides whether to re-read.
func (r *GormRepo) CompareAndSetStatus(ctx context.Context, cur *Order, to Status, now time.Time) (*Order, error) {
	var updated *Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Order{}).
			Where("id = ? AND version = ? AND status = ?", cur.ID, cur.Version, cur.Status).
			Updates(map[string]any{
				"status":     to,
				"updated_at": now,
				"version":    gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("update order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrStale
		}
		o, err := r.get(tx, cur.ID)
		if err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the order and its items.
func (r *GormRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&Order{})
		if res.Error != nil {
			return fmt.Errorf("delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
