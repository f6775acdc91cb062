package dropea

import (
	"fmt"
	"time"
)

const pageSize = 50

// pendingOrdersQuery scopes the fetch to orders awaiting fulfillment.
const pendingOrdersQuery = `
query GetPendingOrders($page: Int!, $perPage: Int!, $dateField: FilterDateEnum!, $startDate: String!, $endDate: String!) {
  orders(
    page: $page,
    limit: $perPage,
    status: PENDING,
    date_field: $dateField,
    start_date: $startDate,
    end_date: $endDate,
    sort: CREATED_AT,
    direction: DESC
  ) {
    data {
      id
      created_at
      external_order_id
      status
      customer {
        full_name
        first_name
        last_name
        phone
        email
        address
        city
        state
        zip
      }
      items {
        product {
          name
          sku
        }
        quantity
      }
      total_amount
    }
    has_more_pages
  }
}
`

// incidenceOrdersQuery scopes the fetch to orders carrying a delivery
// incident. Sort stays CREATED_AT; UPDATED_AT as a sort key errors upstream.
const incidenceOrdersQuery = `
query GetIncidenceOrders($page: Int!, $perPage: Int!, $dateField: FilterDateEnum!, $startDate: String!, $endDate: String!) {
  orders(
    page: $page,
    limit: $perPage,
    status: INCIDENCE,
    date_field: $dateField,
    start_date: $startDate,
    end_date: $endDate,
    sort: CREATED_AT,
    direction: DESC
  ) {
    data {
      id
      created_at
      external_order_id
      status
      customer {
        full_name
        first_name
        last_name
        phone
        email
        address
        city
        state
        zip
      }
      items {
        product {
          name
          sku
        }
        quantity
      }
      total_amount
      issues {
        description
        incidence_code
        status
        updated_at
      }
    }
    has_more_pages
  }
}
`

// FetchOptions contains optional window overrides for fetching orders
type FetchOptions struct {
	DaysBack    int
	DaysForward int
}

// DefaultPendingOptions is the rolling window for pending orders: five days
// back, two days forward to absorb the warehouse timezone offset.
func DefaultPendingOptions() FetchOptions {
	return FetchOptions{DaysBack: 5, DaysForward: 2}
}

// DefaultIncidenceOptions is the rolling window for incidence orders:
// fifteen days back so live incidents are not lost, one day forward.
func DefaultIncidenceOptions() FetchOptions {
	return FetchOptions{DaysBack: 15, DaysForward: 1}
}

// apiDate renders a window boundary the way the API expects: dd-mm-yyyy.
func apiDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// GetPendingOrders fetches pending orders inside the rolling window,
// following pagination until the API reports no more pages.
func (c *Client) GetPendingOrders(opts FetchOptions) ([]Order, error) {
	if opts.DaysBack == 0 && opts.DaysForward == 0 {
		opts = DefaultPendingOptions()
	}
	return c.fetchAll(pendingOrdersQuery, "CREATED_AT", opts)
}

// GetIncidenceOrders fetches orders with an open-or-recent incident. The
// window filters on when the incident was last updated, not order creation.
func (c *Client) GetIncidenceOrders(opts FetchOptions) ([]Order, error) {
	if opts.DaysBack == 0 && opts.DaysForward == 0 {
		opts = DefaultIncidenceOptions()
	}
	return c.fetchAll(incidenceOrdersQuery, "UPDATED_AT", opts)
}

func (c *Client) fetchAll(queryText, dateField string, opts FetchOptions) ([]Order, error) {
	today := c.now()
	startDate := apiDate(today.AddDate(0, 0, -opts.DaysBack))
	endDate := apiDate(today.AddDate(0, 0, opts.DaysForward))

	var allOrders []Order

	for page := 1; ; page++ {
		orders, hasMore, err := c.query(queryText, map[string]any{
			"page":      page,
			"perPage":   pageSize,
			"dateField": dateField,
			"startDate": startDate,
			"endDate":   endDate,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		allOrders = append(allOrders, orders...)

		if !hasMore {
			break
		}
	}

	return allOrders, nil
}
