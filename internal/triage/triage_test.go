package triage

import (
	"testing"

	"github.com/ibericastore/whatstriage/internal/dropea"
)

func pending(id, createdAt string) dropea.Order {
	return dropea.Order{
		ID:        "1",
		CreatedAt: createdAt,
		Status:    dropea.StatusPending,
		Customer:  dropea.Customer{FullName: id},
	}
}

func incidence(name, status, updatedAt string) dropea.Order {
	return dropea.Order{
		ID:        "1",
		CreatedAt: "2023-10-01 00:00:00",
		Status:    dropea.StatusIncidence,
		Customer:  dropea.Customer{FullName: name},
		Issues: &dropea.Issue{
			IncidenceCode: "AUSENTE",
			Status:        status,
			UpdatedAt:     updatedAt,
		},
	}
}

func names(orders []dropea.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.Customer.FullName
	}
	return out
}

func TestClassify(t *testing.T) {
	if got := Classify(pending("a", "2023-10-01")); got != LanePending {
		t.Errorf("order without incident classified as %v", got)
	}
	if got := Classify(incidence("b", dropea.IssueOpen, "")); got != LaneIncidence {
		t.Errorf("order with incident classified as %v", got)
	}
}

func TestRequiresAction(t *testing.T) {
	tests := []struct {
		name  string
		order dropea.Order
		want  bool
	}{
		{"open incident", incidence("a", dropea.IssueOpen, ""), true},
		{"solution sent", incidence("a", dropea.IssueSolutionSent, ""), false},
		{"other handled", incidence("a", "CLOSED", ""), false},
		{"no incident", pending("a", "2023-10-01"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresAction(tt.order); got != tt.want {
				t.Errorf("RequiresAction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortPendingMostRecentFirst(t *testing.T) {
	orders := []dropea.Order{
		pending("old", "2023-10-20 10:00:00"),
		pending("new", "2023-10-25 10:00:00"),
		pending("mid", "2023-10-22 10:00:00"),
	}

	SortPending(orders)

	got := names(orders)
	want := []string{"new", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pending order = %v, want %v", got, want)
		}
	}
}

func TestSortPendingUnparseableDatesLast(t *testing.T) {
	orders := []dropea.Order{
		pending("broken", "not-a-date"),
		pending("dated", "2023-10-25 10:00:00"),
	}

	SortPending(orders)

	if orders[len(orders)-1].Customer.FullName != "broken" {
		t.Errorf("unparseable timestamp should sort last, got %v", names(orders))
	}
}

func TestSortIncidenceActionRequiredFirst(t *testing.T) {
	// The solution-sent record is newer, but open status dominates.
	orders := []dropea.Order{
		incidence("sent-new", dropea.IssueSolutionSent, "2023-10-26 12:00:00"),
		incidence("open-old", dropea.IssueOpen, "2023-10-20 12:00:00"),
	}

	SortIncidence(orders)

	if orders[0].Customer.FullName != "open-old" {
		t.Errorf("open incident must sort before solution-sent regardless of timestamps, got %v", names(orders))
	}
}

func TestSortIncidenceRecencyWithinPriority(t *testing.T) {
	orders := []dropea.Order{
		incidence("open-old", dropea.IssueOpen, "2023-10-20 12:00:00"),
		incidence("open-new", dropea.IssueOpen, "2023-10-26 12:00:00"),
		incidence("sent-old", dropea.IssueSolutionSent, "2023-10-19 12:00:00"),
		incidence("sent-new", dropea.IssueSolutionSent, "2023-10-25 12:00:00"),
	}

	SortIncidence(orders)

	got := names(orders)
	want := []string{"open-new", "open-old", "sent-new", "sent-old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("incidence order = %v, want %v", got, want)
		}
	}
}

func TestFilterResolved(t *testing.T) {
	orders := []dropea.Order{
		incidence("open", dropea.IssueOpen, ""),
		incidence("sent", dropea.IssueSolutionSent, ""),
		incidence("handled", "CLOSED", ""),
	}

	hidden := FilterResolved(orders, true)
	for _, o := range hidden {
		if Resolved(o) {
			t.Errorf("solution-sent record %q survived the default filter", o.Customer.FullName)
		}
	}
	if len(hidden) != 2 {
		t.Errorf("expected 2 records after hiding resolved, got %d", len(hidden))
	}

	// Toggling off restores records without disturbing relative order.
	shown := FilterResolved(orders, false)
	if len(shown) != 3 {
		t.Errorf("expected all 3 records with the toggle off, got %d", len(shown))
	}
	got := names(shown)
	want := []string{"open", "sent", "handled"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("relative order disturbed: %v", got)
		}
	}
}

func TestArrangeDoesNotMutateInput(t *testing.T) {
	orders := []dropea.Order{
		pending("old", "2023-10-20 10:00:00"),
		pending("new", "2023-10-25 10:00:00"),
	}

	arranged := Arrange(orders, LanePending, true)

	if orders[0].Customer.FullName != "old" {
		t.Error("Arrange must not reorder the input snapshot")
	}
	if arranged[0].Customer.FullName != "new" {
		t.Errorf("arranged output not sorted: %v", names(arranged))
	}
}

func TestArrangeIncidenceLane(t *testing.T) {
	orders := []dropea.Order{
		incidence("sent", dropea.IssueSolutionSent, "2023-10-26 12:00:00"),
		incidence("open", dropea.IssueOpen, "2023-10-20 12:00:00"),
	}

	arranged := Arrange(orders, LaneIncidence, true)
	if len(arranged) != 1 || arranged[0].Customer.FullName != "open" {
		t.Errorf("expected only the open record, got %v", names(arranged))
	}

	both := Arrange(orders, LaneIncidence, false)
	if len(both) != 2 || both[0].Customer.FullName != "open" {
		t.Errorf("expected open first with filter off, got %v", names(both))
	}
}
