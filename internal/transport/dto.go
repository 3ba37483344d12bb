package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/orders"
	"github.com/Skotchmaster/storefront/internal/users"
)

type RegisterRequest struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r RegisterRequest) Input() users.RegisterInput {
	return users.RegisterInput{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Password: r.Password}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Input() users.LoginInput {
	return users.LoginInput{Email: r.Email, Password: r.Password}
}

type AdminProfile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"fname"`
	LastName  string    `json:"lname"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
}

type AdminCreatedResponse struct {
	Message string       `json:"message"`
	Admin   AdminProfile `json:"admin"`
}

func NewAdminCreatedResponse(u *users.User) AdminCreatedResponse {
	return AdminCreatedResponse{
		Message: "Admin profile created successfully",
		Admin: AdminProfile{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
		},
	}
}

// CreateOrderItem accepts the quantity as either "quantity" or "qty". "quantity" wins when both
// are present.
type CreateOrderItem struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  *int      `json:"quantity"`
	Qty       *int      `json:"qty"`
}

func (it CreateOrderItem) quantity() int {
	switch {
	case it.Quantity != nil:
		return *it.Quantity
	case it.Qty != nil:
		return *it.Qty
	default:
		return 0
	}
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
	Total float64           `json:"total"`
}

func (r CreateOrderRequest) Input() orders.CreateInput {
	in := orders.CreateInput{Total: r.Total}
	for _, it := range r.Items {
		in.Items = append(in.Items, orders.ItemInput{ProductID: it.ProductID, Quantity: it.quantity()})
	}
	return in
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
