package invoice

import (
	"strings"
	"time"
	"unicode"

	"github.com/nithyashree19/electromart/internal/domain"
)

// Header is the branded block at the top of every invoice.
type Header struct {
	StoreName string
	Tagline   string
	Slogan    string
	Contact   string
}

// Line is one invoice row: a product snapshot with its quantity and total.
type Line struct {
	Name      string
	Brand     string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// Document is the structured invoice model. It is pure data: rendering is
// a separate concern, so document assembly can be tested without any
// rendering engine.
type Document struct {
	Number    string
	IssueDate time.Time
	Customer  domain.CustomerDetails
	Lines     []Line
	Breakdown domain.PricingBreakdown
	Header    Header
	Footer    []string
}

var defaultHeader = Header{
	StoreName: "ElectroMart",
	Tagline:   "Premium Electronics Store",
	Slogan:    "Your Gateway to Premium Electronics",
	Contact:   "support@electromart.com | +1-800-ELECTRO",
}

var defaultFooter = []string{
	"Thank you for choosing ElectroMart!",
	"Your Gateway to Premium Electronics",
	"Payment Terms: Net 30 days | Returns: 30-day policy",
	"Warranty: All products include manufacturer warranty",
}

// BuildDocument snapshots the selected items and their pricing breakdown
// into an invoice document.
func BuildDocument(number string, issueDate time.Time, customer domain.CustomerDetails,
	items []domain.CartItem, breakdown domain.PricingBreakdown) *Document {

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			Name:      item.Name,
			Brand:     item.Brand,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Total:     item.LineTotal(),
		})
	}

	return &Document{
		Number:    number,
		IssueDate: issueDate,
		Customer:  customer,
		Lines:     lines,
		Breakdown: breakdown,
		Header:    defaultHeader,
		Footer:    defaultFooter,
	}
}

// Filename names the exported artifact after the invoice number and the
// customer, with everything but letters and digits stripped from the name.
func (d *Document) Filename() string {
	return "ElectroMart-Invoice-" + d.Number + "-" + sanitizeName(d.Customer.Name) + ".pdf"
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
