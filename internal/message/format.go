// Package message turns a normalized order into non-repeating,
// context-appropriate WhatsApp text plus a destination handle.
package message

import (
	"strconv"
	"strings"

	"github.com/ibericastore/whatstriage/internal/dropea"
)

// genericProductName is shown for items whose product carries no name.
const genericProductName = "Producto"

// FormatDate converts an API timestamp ("YYYY-MM-DD[ HH:MM:SS]") to the
// display form "DD/MM/YYYY". Input that does not split into three date
// segments is returned unchanged.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	datePart := strings.SplitN(raw, " ", 2)[0]
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return raw
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// FormatCurrency renders a non-negative amount with exactly two fraction
// digits and a comma decimal separator, the Spanish market convention.
func FormatCurrency(amount float64) string {
	return strings.Replace(strconv.FormatFloat(amount, 'f', 2, 64), ".", ",", 1)
}

// NormalizePhone strips a single leading "+" from a phone number. It does
// not validate length or country code; an empty input yields an empty
// handle, which callers must treat as "cannot dispatch".
func NormalizePhone(raw string) string {
	return strings.TrimPrefix(raw, "+")
}

// ResolveProductName returns the display name for a line item. The
// sku-keyed overrides map wins, then the product's own name, then a
// generic placeholder.
func ResolveProductName(overrides map[string]string, item dropea.LineItem) string {
	if name, ok := overrides[item.Product.SKU]; ok && name != "" {
		return name
	}
	if item.Product.Name != "" {
		return item.Product.Name
	}
	return genericProductName
}

// DisplayName is the customer name used in full messages.
func DisplayName(c dropea.Customer) string {
	if c.FullName != "" {
		return c.FullName
	}
	return "Cliente"
}

// FirstName is the short name used in the greeting phase.
func FirstName(c dropea.Customer) string {
	if c.FirstName != "" {
		return c.FirstName
	}
	if fields := strings.Fields(c.FullName); len(fields) > 0 {
		return fields[0]
	}
	return "Cliente"
}
