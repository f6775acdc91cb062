// Package triage classifies, filters, and orders records for operator
// presentation. It never mutates records and holds no state; every function
// is a pure transformation over one coherent snapshot of orders.
package triage

import (
	"sort"

	"github.com/ibericastore/whatstriage/internal/dropea"
)

// Lane is the pending vs incidence grouping of orders.
type Lane int

const (
	LanePending Lane = iota
	LaneIncidence
)

func (l Lane) String() string {
	if l == LaneIncidence {
		return "incidence"
	}
	return "pending"
}

// Classify derives the lane from record shape alone: a record belongs to
// the incidence lane iff it carries an incident. Each API query is already
// scoped to one status, but the lane must be re-derivable defensively.
func Classify(order dropea.Order) Lane {
	if order.HasIncidence() {
		return LaneIncidence
	}
	return LanePending
}

// RequiresAction reports whether an incidence record still needs the
// operator: only an open incident does. Every other status — solution
// already sent, or otherwise handled — is displayed as non-urgent.
func RequiresAction(order dropea.Order) bool {
	return order.Issues != nil && order.Issues.Status == dropea.IssueOpen
}

// Resolved reports whether the incident was answered with a solution.
func Resolved(order dropea.Order) bool {
	return order.Issues != nil && order.Issues.Status == dropea.IssueSolutionSent
}

// FilterResolved hides solution-sent incidence records when hide is true.
// Relative order of the remaining records is preserved. Records without an
// incident pass through untouched; the pending lane is never filtered.
func FilterResolved(orders []dropea.Order, hide bool) []dropea.Order {
	if !hide {
		return orders
	}
	filtered := make([]dropea.Order, 0, len(orders))
	for _, order := range orders {
		if Resolved(order) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}

// SortPending orders the pending lane most recent first by creation
// timestamp. Unparseable timestamps sort as the epoch, i.e. last.
func SortPending(orders []dropea.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return dropea.ParseAPITime(orders[i].CreatedAt).After(dropea.ParseAPITime(orders[j].CreatedAt))
	})
}

// SortIncidence orders the incidence lane: records that still require
// action first, then by most recent activity. The sort is stable, so equal
// keys keep their upstream order.
func SortIncidence(orders []dropea.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		ai, aj := RequiresAction(orders[i]), RequiresAction(orders[j])
		if ai != aj {
			return ai
		}
		return dropea.ParseAPITime(orders[i].LastUpdated()).After(dropea.ParseAPITime(orders[j].LastUpdated()))
	})
}

// Arrange applies the lane's filtering and ordering in one step and returns
// a new slice, leaving the input snapshot untouched.
func Arrange(orders []dropea.Order, lane Lane, hideResolved bool) []dropea.Order {
	arranged := make([]dropea.Order, len(orders))
	copy(arranged, orders)

	if lane == LaneIncidence {
		arranged = FilterResolved(arranged, hideResolved)
		SortIncidence(arranged)
		return arranged
	}

	SortPending(arranged)
	return arranged
}
