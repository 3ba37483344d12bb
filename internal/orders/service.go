package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/apperr"
	"github.com/Skotchmaster/storefront/internal/auth"
	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/metrics"
)

const (
	MsgOrderNotFound = "Order not found"
	MsgConcurrent    = "order was modified concurrently"
)

// ItemView is an order item enriched with the current catalog data. Product is nil when the
// referenced product no longer resolves.
type ItemView struct {
	ProductID uuid.UUID        `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *catalog.Summary `json:"product"`
}

type View struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Items     []ItemView `json:"items"`
	Total     float64    `json:"total"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Service struct {
	Repo    Repository
	Catalog catalog.Lookup
	Policy  Policy
	Events  *events.Emitter
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func NewService(repo Repository, lookup catalog.Lookup, policy Policy, em *events.Emitter, m *metrics.Metrics) *Service {
	return &Service{Repo: repo, Catalog: lookup, Policy: policy, Events: em, Metrics: m, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *Service) Create(ctx context.Context, id *auth.Identity, in CreateInput) (*View, error) {
	l := logging.FromContext(ctx).With("svc", "orders.create")

	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	if err := apperr.FromValidation(in.Validate()); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "validation failed", "error", err)
		return nil, err
	}

	now := s.now()
	order := &Order{
		UserID:    id.ID,
		Total:     in.Total,
		Status:    StatusProcessing,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, it := range in.Items {
		order.Items = append(order.Items, OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Position: i})
	}
	if err := s.Repo.Create(ctx, order); err != nil {
		l.Error("create_order_error", "status", 500, "error", err)
		return nil, apperr.Internal(err)
	}

	s.Metrics.ObserveTransition("new", string(order.Status))
	s.Events.Emit(ctx, events.TopicOrders, order.ID.String(), "order_created", orderPayload(order))
	l.Info("order_created", "order_id", order.ID.String(), "user_id", id.ID.String())
	return s.enrichOne(ctx, l, order), nil
}

// List returns the caller's own orders, newest first. Admins get their own orders too.
func (s *Service) List(ctx context.Context, id *auth.Identity) ([]View, error) {
	l := logging.FromContext(ctx).With("svc", "orders.list")

	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	list, err := s.Repo.ListByOwner(ctx, id.ID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return nil, apperr.Internal(err)
	}
	return s.enrich(ctx, l, list), nil
}

func (s *Service) Get(ctx context.Context, id *auth.Identity, orderID uuid.UUID) (*View, error) {
	l := logging.FromContext(ctx).With("svc", "orders.get", "order_id", orderID.String())

	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, l, orderID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireSelfOrAdmin(id, order.UserID); err != nil {
		l.Warn("get_order_error", "status", 403, "reason", "not owner", "user_id", id.ID.String())
		return nil, err
	}
	return s.enrichOne(ctx, l, order), nil
}

// OwnerCancel is reserved to the owner; admins change status through AdminSetStatus.
func (s *Service) OwnerCancel(ctx context.Context, id *auth.Identity, orderID uuid.UUID) (*View, error) {
	l := logging.FromContext(ctx).With("svc", "orders.cancel", "order_id", orderID.String())

	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, l, orderID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(id, order.UserID); err != nil {
		l.Warn("cancel_order_error", "status", 403, "reason", "not owner", "user_id", id.ID.String())
		return nil, err
	}
	if !order.Status.Cancellable() {
		l.Warn("cancel_order_error", "status", 400, "reason", "terminal status", "order_status", string(order.Status))
		return nil, apperr.Conflict(fmt.Sprintf("Cannot cancel an order with status: %s", order.Status))
	}

	updated, err := s.transition(ctx, l, order, StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, events.TopicOrders, updated.ID.String(), "order_cancelled", orderPayload(updated))
	return s.enrichOne(ctx, l, updated), nil
}

func (s *Service) AdminSetStatus(ctx context.Context, id *auth.Identity, orderID uuid.UUID, status string) (*View, error) {
	l := logging.FromContext(ctx).With("svc", "orders.set_status", "order_id", orderID.String())

	if err := auth.RequireAdmin(id); err != nil {
		return nil, err
	}
	if err := apperr.FromValidation(validateStatus(status)); err != nil {
		l.Warn("set_status_error", "status", 400, "reason", "invalid status", "requested", status)
		return nil, err
	}
	to := Status(status)

	order, err := s.load(ctx, l, orderID)
	if err != nil {
		return nil, err
	}
	policy := s.Policy
	if policy == "" {
		policy = PolicyLenient
	}
	if !policy.Allows(order.Status, to) {
		l.Warn("set_status_error", "status", 400, "reason", "transition not allowed", "from", string(order.Status), "to", status)
		return nil, apperr.Conflict(fmt.Sprintf("Cannot change order status from %s to %s", order.Status, to))
	}

	updated, err := s.transition(ctx, l, order, to)
	if err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, events.TopicOrders, updated.ID.String(), "order_status_changed", map[string]any{
		"id":     updated.ID.String(),
		"userId": updated.UserID.String(),
		"from":   string(order.Status),
		"to":     string(to),
		"by":     id.ID.String(),
	})
	return s.enrichOne(ctx, l, updated), nil
}

func (s *Service) AdminDelete(ctx context.Context, id *auth.Identity, orderID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "orders.delete", "order_id", orderID.String())

	if err := auth.RequireAdmin(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, ErrNotFound) {
			l.Warn("delete_order_error", "status", 404, "reason", "not found")
			return apperr.NotFound(MsgOrderNotFound)
		}
		l.Error("delete_order_error", "status", 500, "error", err)
		return apperr.Internal(err)
	}
	s.Events.Emit(ctx, events.TopicOrders, orderID.String(), "order_deleted", map[string]any{
		"id": orderID.String(),
		"by": id.ID.String(),
	})
	l.Info("order_deleted", "by", id.ID.String())
	return nil
}

func (s *Service) load(ctx context.Context, l *slog.Logger, orderID uuid.UUID) (*Order, error) {
	order, err := s.Repo.Get(ctx, orderID)
	switch {
	case errors.Is(err, ErrNotFound):
		l.Warn("order_lookup_error", "status", 404, "reason", "not found")
		return nil, apperr.NotFound(MsgOrderNotFound)
	case err != nil:
		l.Error("order_lookup_error", "status", 500, "error", err)
		return nil, apperr.Internal(err)
	}
	return order, nil
}

func (s *Service) transition(ctx context.Context, l *slog.Logger, order *Order, to Status) (*Order, error) {
	updated, err := s.Repo.CompareAndSetStatus(ctx, order, to, s.now())
	switch {
	case errors.Is(err, ErrStale):
		l.Warn("order_transition_error", "status", 400, "reason", "lost concurrent update", "from", string(order.Status), "to", string(to))
		return nil, apperr.Conflict(MsgConcurrent)
	case errors.Is(err, ErrNotFound):
		return nil, apperr.NotFound(MsgOrderNotFound)
	case err != nil:
		l.Error("order_transition_error", "status", 500, "error", err)
		return nil, apperr.Internal(err)
	}
	s.Metrics.ObserveTransition(string(order.Status), string(to))
	l.Info("order_status_changed", "from", string(order.Status), "to", string(to))
	return updated, nil
}

func (s *Service) enrichOne(ctx context.Context, l *slog.Logger, o *Order) *View {
	views := s.enrich(ctx, l, []Order{*o})
	return &views[0]
}

// enrich resolves every product referenced by the orders in one lookup. A failing catalog
// degrades to unresolved products rather than failing the read.
func (s *Service) enrich(ctx context.Context, l *slog.Logger, list []Order) []View {
	products := map[uuid.UUID]catalog.Summary{}
	if s.Catalog != nil {
		seen := map[uuid.UUID]struct{}{}
		var ids []uuid.UUID
		for _, o := range list {
			for _, it := range o.Items {
				if _, ok := seen[it.ProductID]; !ok {
					seen[it.ProductID] = struct{}{}
					ids = append(ids, it.ProductID)
				}
			}
		}
		if len(ids) > 0 {
			found, err := s.Catalog.ProductsByID(ctx, ids)
			if err != nil {
				l.Warn("catalog_lookup_error", "products", len(ids), "error", err)
			} else {
				products = found
			}
		}
	}

	views := make([]View, 0, len(list))
	for _, o := range list {
		v := View{
			ID:        o.ID,
			UserID:    o.UserID,
			Items:     make([]ItemView, 0, len(o.Items)),
			Total:     o.Total,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		}
		for _, it := range o.Items {
			iv := ItemView{ProductID: it.ProductID, Quantity: it.Quantity}
			if p, ok := products[it.ProductID]; ok {
				iv.Product = &p
			}
			v.Items = append(v.Items, iv)
		}
		views = append(views, v)
	}
	return views
}

func orderPayload(o *Order) map[string]any {
	return map[string]any{
		"id":     o.ID.String(),
		"userId": o.UserID.String(),
		"total":  o.Total,
		"status": string(o.Status),
	}
}
