package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ibericastore/whatstriage/internal/dropea"
)

func pendingRow(id, phone string) dropea.Order {
	return dropea.Order{
		ID:        json.Number(id),
		CreatedAt: "2023-10-20 10:00:00",
		Status:    dropea.StatusPending,
		Customer: dropea.Customer{
			FullName: "María García",
			Phone:    phone,
			Address:  "Calle Falsa 123",
			City:     "Madrid",
			Zip:      "28001",
		},
		Items: []dropea.LineItem{
			{Product: dropea.Product{Name: "Shilajit", SKU: "SHI-1"}, Quantity: 1},
		},
		TotalAmount: 29.90,
	}
}

func incidenceRow(id, issueStatus string) dropea.Order {
	o := pendingRow(id, "+34666666666")
	o.Status = dropea.StatusIncidence
	o.Issues = &dropea.Issue{
		IncidenceCode: "AUSENTE",
		Status:        issueStatus,
		UpdatedAt:     "2023-10-21 09:00:00",
	}
	return o
}

func TestSetOrdersClampsCursor(t *testing.T) {
	lv := NewListView(120, 40)
	lv.SetOrders([]dropea.Order{pendingRow("1", ""), pendingRow("2", ""), pendingRow("3", "")}, nil)
	lv.SetCursor(2)

	lv.SetOrders([]dropea.Order{pendingRow("1", "")}, nil)
	if lv.Cursor() != 0 {
		t.Errorf("cursor = %d after shrinking to one row, want 0", lv.Cursor())
	}

	lv.SetOrders(nil, nil)
	if lv.Cursor() != 0 {
		t.Errorf("cursor = %d on empty list, want 0", lv.Cursor())
	}
}

func TestMoveCursorStaysInBounds(t *testing.T) {
	lv := NewListView(120, 40)
	lv.SetOrders([]dropea.Order{pendingRow("1", ""), pendingRow("2", "")}, nil)

	lv.MoveCursor(-1)
	if lv.Cursor() != 0 {
		t.Errorf("cursor = %d after moving up from top, want 0", lv.Cursor())
	}

	lv.MoveCursor(1)
	lv.MoveCursor(1)
	if lv.Cursor() != 1 {
		t.Errorf("cursor = %d after moving past bottom, want 1", lv.Cursor())
	}
}

func TestGetOrderOutOfRange(t *testing.T) {
	lv := NewListView(120, 40)
	lv.SetOrders([]dropea.Order{pendingRow("1", "")}, nil)

	if got := lv.GetOrder(-1); got != nil {
		t.Error("GetOrder(-1) should be nil")
	}
	if got := lv.GetOrder(1); got != nil {
		t.Error("GetOrder past end should be nil")
	}
	if got := lv.GetOrder(0); got == nil || got.ID.String() != "1" {
		t.Errorf("GetOrder(0) = %v, want order 1", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is a longer string", 10, "this is a…"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestGetStatusText(t *testing.T) {
	tests := []struct {
		name  string
		order dropea.Order
		want  string
	}{
		{"open incidence", incidenceRow("1", dropea.IssueOpen), "🔴 Action"},
		{"solution sent", incidenceRow("2", dropea.IssueSolutionSent), "✉ Sol. sent"},
		{"handled incidence", incidenceRow("3", "CLOSED"), "🟢 Handled"},
		{"pending with contact", pendingRow("4", "+34666666666"), "· Pending"},
		{"pending without phone", pendingRow("5", ""), "⚠ No phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getStatusText(tt.order); got != tt.want {
				t.Errorf("getStatusText() = %q, want %q", got, tt.want)
			}
		})
	}

	noAddr := pendingRow("6", "+34666666666")
	noAddr.Customer.Address = ""
	if got := getStatusText(noAddr); got != "⚠ No addr" {
		t.Errorf("getStatusText(no address) = %q, want ⚠ No addr", got)
	}
}

func TestGetSentText(t *testing.T) {
	if got := getSentText(""); got != "—" {
		t.Errorf("getSentText(empty) = %q, want —", got)
	}
	if got := getSentText("greeting"); got != "✓ greeting" {
		t.Errorf("getSentText(greeting) = %q", got)
	}
}

func TestProductSummary(t *testing.T) {
	order := pendingRow("1", "")
	order.Items = append(order.Items, dropea.LineItem{
		Product:  dropea.Product{SKU: "NONAME-1"},
		Quantity: 2,
	})

	got := productSummary(order)
	want := "1x Shilajit, 2x Producto"
	if got != want {
		t.Errorf("productSummary() = %q, want %q", got, want)
	}

	if got := productSummary(dropea.Order{}); got != "" {
		t.Errorf("productSummary(no items) = %q, want empty", got)
	}
}

func TestShippingSummary(t *testing.T) {
	got := shippingSummary(dropea.Customer{Address: "Calle Falsa 123", City: "Madrid", Zip: "28001"})
	if got != "Calle Falsa 123, Madrid, 28001" {
		t.Errorf("shippingSummary() = %q", got)
	}

	if got := shippingSummary(dropea.Customer{}); got != "no address" {
		t.Errorf("shippingSummary(empty) = %q, want no address", got)
	}
}

func TestDetailViewFlagsMissingPhone(t *testing.T) {
	lv := NewListView(120, 40)
	lv.SetOrders([]dropea.Order{pendingRow("1", "")}, nil)

	detail := lv.DetailView(120, NewStyles(Themes["default"]))
	if !strings.Contains(detail, "no phone") {
		t.Errorf("detail pane should flag the missing phone:\n%s", detail)
	}
}

func TestDetailViewShowsIncidenceReason(t *testing.T) {
	lv := NewListView(120, 40)
	lv.SetOrders([]dropea.Order{incidenceRow("1", dropea.IssueOpen)}, nil)

	detail := lv.DetailView(120, NewStyles(Themes["default"]))
	if !strings.Contains(detail, "requires action") {
		t.Errorf("detail pane should flag an open incidence:\n%s", detail)
	}
	if !strings.Contains(detail, "ausencia del destinatario") {
		t.Errorf("detail pane should name the incidence reason:\n%s", detail)
	}
}

func TestDetailViewFixedHeight(t *testing.T) {
	lv := NewListView(120, 40)
	lv.SetOrders([]dropea.Order{pendingRow("1", "+34666666666")}, nil)

	detail := lv.DetailView(120, NewStyles(Themes["default"]))
	if got := len(strings.Split(detail, "\n")); got != detailPaneHeight {
		t.Errorf("detail pane is %d lines, want %d", got, detailPaneHeight)
	}
}
