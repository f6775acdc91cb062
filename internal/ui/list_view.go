package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ibericastore/whatstriage/internal/dropea"
	"github.com/ibericastore/whatstriage/internal/message"
	"github.com/ibericastore/whatstriage/internal/triage"
)

type ListView struct {
	table       table.Model
	orders      []dropea.Order
	sent        map[string]string
	cursor      int
	width       int
	height      int
	visibleRows int // number of data rows visible (excluding header)

	// Styles for custom rendering
	headerStyle   lipgloss.Style
	cellStyle     lipgloss.Style
	selectedStyle lipgloss.Style
	columns       []table.Column
}

func listColumns(width int) []table.Column {
	// Each cell has Padding(0,1) adding 2 chars per column (7 columns = 14
	// extra). Subtract 2 more to avoid hitting exact terminal width.
	fixedWidth := 10 + 10 + 18 + 14 + 10 + 9
	padding := 7*2 + 2
	productsWidth := width - fixedWidth - padding
	if productsWidth < 20 {
		productsWidth = 20
	}
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Order", Width: 10},
		{Title: "Customer", Width: 18},
		{Title: "Status", Width: 14},
		{Title: "Sent", Width: 10},
		{Title: "Total", Width: 9},
		{Title: "Products", Width: productsWidth},
	}
}

func NewListView(width, height int) ListView {
	columns := listColumns(width)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	// Reserve space for: header(2) + divider(1) + detail pane(5) + status(1) + footer(3)
	visibleRows := height - 12
	// Subtract 2 for the table header (text + border)
	visibleRows -= 2
	if visibleRows < 3 {
		visibleRows = 3
	}

	// Still create the table for compatibility but we won't use its View()
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(visibleRows+2),
		table.WithFocused(true),
	)

	return ListView{
		table:         t,
		sent:          map[string]string{},
		width:         width,
		height:        height,
		visibleRows:   visibleRows,
		headerStyle:   headerStyle,
		cellStyle:     cellStyle,
		selectedStyle: selectedStyle,
		columns:       columns,
	}
}

// UpdateTableStyles updates the styles to match the current theme
func (lv *ListView) UpdateTableStyles(theme Theme) {
	lv.headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Subtle)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Primary))
	lv.selectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Primary)).
		Bold(false)

	// Keep the bubbles table in sync for any code that still uses it
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Subtle)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Primary))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Primary)).
		Bold(false)
	lv.table.SetStyles(s)
}

// SetOrders replaces the rows. The sent map records which orders were
// already messaged this session, keyed by order id.
func (lv *ListView) SetOrders(orders []dropea.Order, sent map[string]string) {
	lv.orders = orders
	if sent != nil {
		lv.sent = sent
	}
	if lv.cursor >= len(orders) {
		lv.cursor = len(orders) - 1
	}
	if lv.cursor < 0 {
		lv.cursor = 0
	}
	lv.updateRows()
}

func (lv *ListView) updateRows() {
	rows := make([]table.Row, len(lv.orders))
	for i, order := range lv.orders {
		date := message.FormatDate(order.CreatedAt)
		ref := "#" + order.DisplayID()
		customer := Truncate(order.Customer.FullName, 18)
		status := runewidth.FillRight(getStatusText(order), 14)
		sent := runewidth.FillRight(getSentText(lv.sent[order.ID.String()]), 10)
		total := message.FormatCurrency(order.TotalAmount) + " €"
		products := Truncate(productSummary(order), lv.width-75)

		rows[i] = table.Row{date, ref, customer, status, sent, total, products}
	}
	lv.table.SetRows(rows)
}

func productSummary(order dropea.Order) string {
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.Product.Name
		if name == "" {
			name = "Producto"
		}
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, name))
	}
	return strings.Join(parts, ", ")
}

func Truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) > maxLen {
		return runewidth.Truncate(s, maxLen, "…")
	}
	return s
}

func getStatusText(order dropea.Order) string {
	if order.HasIncidence() {
		if triage.RequiresAction(order) {
			return "🔴 Action"
		}
		if triage.Resolved(order) {
			return "✉ Sol. sent"
		}
		return "🟢 Handled"
	}
	if order.Customer.Phone == "" {
		return "⚠ No phone"
	}
	if order.Customer.Address == "" {
		return "⚠ No addr"
	}
	return "· Pending"
}

func getSentText(phase string) string {
	if phase == "" {
		return "—"
	}
	return "✓ " + phase
}

// detailPaneHeight is the fixed number of lines the detail pane always occupies.
const detailPaneHeight = 5

// DetailView renders a detail pane for the cursor order, padded to a fixed height.
func (lv *ListView) DetailView(width int, styles Styles) string {
	order := lv.GetOrder(lv.cursor)
	if order == nil {
		return ""
	}

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	var lines []string

	title := fmt.Sprintf("#%s · %s", order.DisplayID(), order.Customer.FullName)
	lines = append(lines, styles.Highlight.Render(Truncate(title, maxWidth)))

	contact := order.Customer.Phone
	if contact == "" {
		contact = "no phone — cannot message"
	}
	address := shippingSummary(order.Customer)
	lines = append(lines, styles.Normal.Render(Truncate(contact+" · "+address, maxWidth)))

	items := productSummary(*order)
	if items == "" {
		items = "no items"
	}
	lines = append(lines, styles.Normal.Render(Truncate(items+" · "+message.FormatCurrency(order.TotalAmount)+" €", maxWidth)))

	if order.Issues != nil {
		reason := message.ResolveReason(order.Issues.IncidenceCode)
		tag := "handled"
		if triage.RequiresAction(*order) {
			tag = "requires action"
		}
		lines = append(lines, styles.Warning.Render(Truncate(fmt.Sprintf("incidence (%s): %s", tag, reason), maxWidth)))
		if order.Issues.Description != "" {
			lines = append(lines, styles.HelpDesc.Render(Truncate(order.Issues.Description, maxWidth)))
		}
	}

	for len(lines) < detailPaneHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines[:detailPaneHeight], "\n")
}

func shippingSummary(c dropea.Customer) string {
	if c.Address == "" {
		return "no address"
	}
	parts := []string{c.Address}
	for _, field := range []string{c.City, c.State, c.Zip} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, ", ")
}

func (lv ListView) Cursor() int {
	return lv.cursor
}

func (lv *ListView) SetCursor(pos int) {
	if pos >= 0 && pos < len(lv.orders) {
		lv.cursor = pos
		lv.table.SetCursor(pos)
	}
}

func (lv *ListView) MoveCursor(delta int) {
	newPos := lv.cursor + delta
	if newPos >= 0 && newPos < len(lv.orders) {
		lv.cursor = newPos
		lv.table.SetCursor(newPos)
	}
}

func (lv ListView) GetOrder(index int) *dropea.Order {
	if index >= 0 && index < len(lv.orders) {
		return &lv.orders[index]
	}
	return nil
}

func (lv ListView) Len() int {
	return len(lv.orders)
}

// renderCell renders a single cell value with the given column width.
func (lv *ListView) renderCell(value string, colWidth int) string {
	style := lipgloss.NewStyle().Width(colWidth).MaxWidth(colWidth).Inline(true)
	return lv.cellStyle.Render(style.Render(runewidth.Truncate(value, colWidth, "…")))
}

// View renders the table with our own scrolling logic, bypassing the
// bubbles table viewport which has broken YOffset calculations.
func (lv ListView) View() string {
	rows := lv.table.Rows()

	// Render header
	headerCells := make([]string, 0, len(lv.columns))
	for _, col := range lv.columns {
		if col.Width <= 0 {
			continue
		}
		style := lipgloss.NewStyle().Width(col.Width).MaxWidth(col.Width).Inline(true)
		cell := style.Render(runewidth.Truncate(col.Title, col.Width, "…"))
		headerCells = append(headerCells, lv.headerStyle.Render(lv.cellStyle.Render(cell)))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)

	// Calculate visible window
	visibleRows := lv.visibleRows
	if visibleRows <= 0 {
		visibleRows = 10
	}

	start := 0
	if lv.cursor >= visibleRows {
		start = lv.cursor - visibleRows + 1
	}
	end := start + visibleRows
	if end > len(rows) {
		end = len(rows)
		start = end - visibleRows
		if start < 0 {
			start = 0
		}
	}

	// Render visible rows
	renderedRows := make([]string, 0, visibleRows)
	for i := start; i < end; i++ {
		cells := make([]string, 0, len(lv.columns))
		for ci, value := range rows[i] {
			if lv.columns[ci].Width <= 0 {
				continue
			}
			cells = append(cells, lv.renderCell(value, lv.columns[ci].Width))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if i == lv.cursor {
			row = lv.selectedStyle.Render(row)
		}
		renderedRows = append(renderedRows, row)
	}

	// Pad to fixed height
	for len(renderedRows) < visibleRows {
		renderedRows = append(renderedRows, "")
	}

	return header + "\n" + strings.Join(renderedRows, "\n")
}

func (lv *ListView) SetWidthHeight(width, height int) {
	lv.width = width
	lv.height = height
	lv.columns = listColumns(width)

	// Reserve space for: header(2) + divider(1) + detail pane(5) + status(1) + footer(3)
	visibleRows := height - 12
	// Subtract 2 for the table header (text + border)
	visibleRows -= 2
	if visibleRows < 3 {
		visibleRows = 3
	}
	lv.visibleRows = visibleRows

	lv.table.SetHeight(visibleRows + 2)
	lv.table.SetColumns(lv.columns)
	lv.updateRows()
}
