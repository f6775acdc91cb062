package dropea

import (
	"encoding/json"
	"time"
)

// Order statuses as reported by the Dropea API.
const (
	StatusPending   = "PENDING"
	StatusIncidence = "INCIDENCE"
)

// Issue resolution statuses.
const (
	IssueOpen         = "PENDING"
	IssueSolutionSent = "SOLUTION_SENT"
)

// Customer is the buyer attached to an order. Every field except FullName
// may be empty; the API omits what the shop never collected.
type Customer struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
}

// Product identifies an orderable item.
type Product struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// LineItem is one product line on an order.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Issue is a delivery incident attached to an order. At most one per order.
type Issue struct {
	Description   string `json:"description"`
	IncidenceCode string `json:"incidence_code"`
	Status        string `json:"status"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// Order is a read-only projection of a Dropea order. IDs decode as
// json.Number because the GraphQL endpoint serializes them numerically.
type Order struct {
	ID              json.Number `json:"id"`
	CreatedAt       string      `json:"created_at"`
	ExternalOrderID string      `json:"external_order_id"`
	Status          string      `json:"status"`
	Customer        Customer    `json:"customer"`
	Items           []LineItem  `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	Issues          *Issue      `json:"issues,omitempty"`
}

// DisplayID returns the operator-facing order reference: the external order
// id when present, otherwise the internal id.
func (o Order) DisplayID() string {
	if o.ExternalOrderID != "" {
		return o.ExternalOrderID
	}
	return o.ID.String()
}

// HasIncidence reports whether an incident is attached to the order.
func (o Order) HasIncidence() bool {
	return o.Issues != nil
}

// LastUpdated returns the incident's update timestamp when there is one,
// falling back to the order's creation timestamp.
func (o Order) LastUpdated() string {
	if o.Issues != nil && o.Issues.UpdatedAt != "" {
		return o.Issues.UpdatedAt
	}
	return o.CreatedAt
}

// apiTimeFormats lists the timestamp layouts the API is known to emit.
var apiTimeFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseAPITime parses a Dropea timestamp. Unparseable or empty input yields
// the zero time, which sorts last in recency orderings.
func ParseAPITime(s string) time.Time {
	for _, format := range apiTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// graphQLRequest is the POST body sent to the GraphQL endpoint.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphQLError is one entry of a GraphQL "errors" array.
type graphQLError struct {
	Message string `json:"message"`
}

// ordersResponse is the envelope around an orders query result.
type ordersResponse struct {
	Data struct {
		Orders struct {
			Data         []Order `json:"data"`
			HasMorePages bool    `json:"has_more_pages"`
		} `json:"orders"`
	} `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}
