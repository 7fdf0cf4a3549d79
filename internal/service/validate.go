package service

import (
	"time"

	"github.com/smarttrade/smarttrade/internal/domain"
)

// Order field bounds, inclusive on both ends.
const (
	MinQuantity = 1
	MaxQuantity = 100000
	MinPrice    = 1
	MaxPrice    = 10000
)

// orderDateFloor is the earliest accepted order timestamp.
var orderDateFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// errDateTooEarly is the violation raised by the date-floor rule. The
// date rule runs after field validation as its own business rule, so
// a too-early timestamp is always reported on its own.
const errDateTooEarly = "Date must be on or after January 1, 2000"

// validateOrderRequest runs every field-level rule and returns all
// violations at once. An empty result means the request's fields are
// valid. Pure check, no side effects.
func validateOrderRequest(req *domain.OrderRequest) []string {
	var violations []string

	if req.Symbol == "" {
		violations = append(violations, "Stock Symbol is required")
	}
	if req.Name == "" {
		violations = append(violations, "Stock Name is required")
	}
	if req.Quantity < MinQuantity || req.Quantity > MaxQuantity {
		violations = append(violations, "Quantity must be between 1 and 100,000")
	}
	// Written as a negated conjunction so NaN, which compares false
	// against every bound, is rejected rather than slipping through.
	if !(req.Price >= MinPrice && req.Price <= MaxPrice) {
		violations = append(violations, "Price must be between 1 and 10,000")
	}

	return violations
}

// validateOrderDate enforces the date floor. It is evaluated only after
// field validation passes.
func validateOrderDate(placedAt time.Time) error {
	if placedAt.Before(orderDateFloor) {
		return domain.NewValidationError(errDateTooEarly)
	}
	return nil
}
