package message

import (
	"testing"

	"github.com/ibericastore/whatstriage/internal/dropea"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"date with time", "2023-10-25 10:00:00", "25/10/2023"},
		{"date only", "2023-12-01", "01/12/2023"},
		{"empty", "", ""},
		{"malformed passes through", "25.10.2023", "25.10.2023"},
		{"two segments pass through", "2023-10", "2023-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.input); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"fraction", 29.9, "29,90"},
		{"integral", 10, "10,00"},
		{"zero", 0, "0,00"},
		{"cents round", 5.555, "5,56"},
		{"large", 1234.5, "1234,50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.amount); got != tt.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+34666666666", "34666666666"},
		{"34666666666", "34666666666"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveProductName(t *testing.T) {
	overrides := map[string]string{"Evilgoods_15913": "Crema EvilGoods"}

	tests := []struct {
		name string
		item dropea.LineItem
		want string
	}{
		{
			name: "override by sku",
			item: dropea.LineItem{Product: dropea.Product{Name: "EG cream bulk", SKU: "Evilgoods_15913"}},
			want: "Crema EvilGoods",
		},
		{
			name: "raw name without override",
			item: dropea.LineItem{Product: dropea.Product{Name: "Shilajit", SKU: "SHJ-1"}},
			want: "Shilajit",
		},
		{
			name: "placeholder when nameless",
			item: dropea.LineItem{},
			want: "Producto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveProductName(overrides, tt.item); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstName(t *testing.T) {
	tests := []struct {
		name     string
		customer dropea.Customer
		want     string
	}{
		{"explicit first name", dropea.Customer{FirstName: "Pepe", FullName: "Pepe Viyuela"}, "Pepe"},
		{"first token of full name", dropea.Customer{FullName: "Pepe Viyuela"}, "Pepe"},
		{"fallback", dropea.Customer{}, "Cliente"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstName(tt.customer); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveReason(t *testing.T) {
	knownCodes := []string{
		"AUSENTE", "RECHAZADO", "PUNTO_RECOGIDA", "DIRECCION_INCOMPLETA",
		"APLAZADO", "DIRECCION_DESCONOCIDA", "EN_REPARTO", "FESTIVO",
	}
	for _, code := range knownCodes {
		reason := ResolveReason(code)
		if reason == "" {
			t.Errorf("ResolveReason(%q) returned empty", code)
		}
		if contains(reason, "incidencia en la entrega (código") {
			t.Errorf("ResolveReason(%q) fell back to the generic label: %q", code, reason)
		}
	}

	unknown := ResolveReason("XYZ_42")
	if !contains(unknown, "XYZ_42") {
		t.Errorf("generic reason should carry the raw code, got %q", unknown)
	}

	missing := ResolveReason("")
	if !contains(missing, "SIN_CODIGO") {
		t.Errorf("missing code should be tagged, got %q", missing)
	}
}
