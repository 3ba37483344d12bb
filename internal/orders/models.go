package orders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID        uuid.UUID   `gorm:"primaryKey"                   json:"id"`
	UserID    uuid.UUID   `gorm:"index;not null"               json:"userId"`
	Items     []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
	Total     float64     `gorm:"not null"                     json:"total"`
	Status    Status      `gorm:"size:20;not null;index"       json:"status"`
	Version   int64       `gorm:"not null"                     json:"-"` // bumped by every status change
	CreatedAt time.Time   `gorm:"index;not null"               json:"createdAt"`
	UpdatedAt time.Time   `gorm:"not null"                     json:"updatedAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a snapshot of the product reference and quantity at order time.
type OrderItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                   json:"-"`
	OrderID   uuid.UUID `gorm:"index;not null"               json:"-"`
	ProductID uuid.UUID `gorm:"not null"                     json:"productId"`
	Quantity  int       `gorm:"not null;check:quantity > 0"  json:"quantity"`
	Position  int       `gorm:"not null;default:0"           json:"-"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
