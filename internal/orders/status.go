package orders

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var AllStatuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Cancellable reports whether an owner may still cancel an order in this status.
func (s Status) Cancellable() bool {
	return s != StatusDelivered && s != StatusCancelled
}

// Policy decides which admin status changes are allowed.
type Policy string

const (
	// PolicyLenient lets an admin move an order from any status to any status.
	PolicyLenient Policy = "lenient"
	// PolicyStrict only allows forward moves along Pending, Processing, Shipped, Delivered, and
	// cancellation of orders that are not yet delivered. Terminal statuses are frozen.
	PolicyStrict Policy = "strict"
)

var strictTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  nil,
	StatusCancelled:  nil,
}

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyLenient:
		return PolicyLenient, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown transition policy %q", s)
	}
}

// Allows reports whether from -> to is permitted. Setting the current status again is always
// allowed.
func (p Policy) Allows(from, to Status) bool {
	if from == to {
		return true
	}
	if p != PolicyStrict {
		return true
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
