package paging

import (
	"fmt"

	"social-scheduler-api/internal/apperr"
)

const (
	MaxLimit = 1000

	DefaultLimit       = 100
	DefaultFollowLimit = 20
)

// Page is a skip/limit window. A zero Limit means "use the default".
type Page struct {
	Skip  int
	Limit int
}

// Resolve fills in def for an unset limit and rejects out of range values.
func (p Page) Resolve(def int) (Page, error) {
	if p.Limit == 0 {
		p.Limit = def
	}
	if p.Skip < 0 {
		return p, apperr.InvalidArg("skip must not be negative")
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return p, apperr.InvalidArg(fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	return p, nil
}
