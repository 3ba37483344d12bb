package orders

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const (
	MsgItemsRequired   = "Order must contain items"
	MsgTotalPositive   = "Total must be greater than 0"
	MsgProductRequired = "Product id is required"
	MsgQuantity        = "Quantity must be at least 1"
	MsgInvalidStatus   = "invalid status"
)

type ItemInput struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func (in ItemInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ProductID, validation.By(func(v interface{}) error {
			if id, _ := v.(uuid.UUID); id == uuid.Nil {
				return errors.New(MsgProductRequired)
			}
			return nil
		})),
		validation.Field(&in.Quantity,
			validation.Required.Error(MsgQuantity),
			validation.Min(1).Error(MsgQuantity)),
	)
}

type CreateInput struct {
	Items []ItemInput `json:"items"`
	Total float64     `json:"total"`
}

func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Items, validation.Required.Error(MsgItemsRequired)),
		validation.Field(&in.Total, validation.By(func(v interface{}) error {
			if t, _ := v.(float64); !(t > 0) {
				return errors.New(MsgTotalPositive)
			}
			return nil
		})),
	)
}

func validateStatus(raw string) error {
	return validation.Errors{
		"status": validation.Validate(raw, validation.Required.Error(MsgInvalidStatus), validation.By(func(v interface{}) error {
			if s, _ := v.(string); !Status(s).Valid() {
				return errors.New(MsgInvalidStatus)
			}
			return nil
		})),
	}.Filter()
}
