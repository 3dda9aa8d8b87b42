package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/nithyashree19/electromart/internal/invoice"
)

// PDFRenderer lays an invoice document out as a single-page A4 PDF:
// branded header band, customer block, alternating-shade item table,
// summary block and a fixed terms footer.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Brand palette.
var (
	brandColor  = [3]int{255, 193, 7}
	shadeColor  = [3]int{255, 248, 220}
	savingColor = [3]int{34, 197, 94}
	mutedColor  = [3]int{100, 100, 100}
)

func (r *PDFRenderer) Render(ctx context.Context, doc *invoice.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()

	r.drawHeader(pdf, doc, pageWidth)
	y := r.drawCustomer(pdf, doc, pageWidth, 65)
	y = r.drawItems(pdf, doc, pageWidth, y+10)
	y = r.drawSummary(pdf, doc, pageWidth, y+15)
	r.drawFooter(pdf, doc, y+25)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to produce PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) drawHeader(pdf *fpdf.Fpdf, doc *invoice.Document, pageWidth float64) {
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(0, 0, pageWidth, 50, "F")

	// Logo disc.
	pdf.SetFillColor(255, 255, 255)
	pdf.Circle(25, 25, 12, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(45, 20, doc.Header.StoreName)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(45, 28, doc.Header.Tagline)
	pdf.Text(45, 35, doc.Header.Slogan)
	pdf.Text(45, 42, doc.Header.Contact)

	pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetFont("Helvetica", "B", 28)
	pdf.Text(pageWidth-60, 25, "INVOICE")

	pdf.SetFillColor(shadeColor[0], shadeColor[1], shadeColor[2])
	pdf.Rect(pageWidth-80, 30, 70, 15, "F")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageWidth-75, 37, "Invoice #: "+doc.Number)
	pdf.Text(pageWidth-75, 42, "Date: "+doc.IssueDate.Format("January 2, 2006"))
}

func (r *PDFRenderer) drawCustomer(pdf *fpdf.Fpdf, doc *invoice.Document, pageWidth, y float64) float64 {
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(15, y, pageWidth-30, 8, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(20, y+6, "CUSTOMER INFORMATION")

	y += 15
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)

	pdf.Text(20, y, "Name: "+doc.Customer.Name)
	y += 6
	pdf.Text(20, y, "Email: "+doc.Customer.Email)
	y += 6
	pdf.Text(20, y, "Phone: "+doc.Customer.Phone)
	y += 6
	if doc.Customer.Address != "" {
		pdf.Text(20, y, "Address: "+doc.Customer.Address)
		y += 6
	}
	return y
}

func (r *PDFRenderer) drawItems(pdf *fpdf.Fpdf, doc *invoice.Document, pageWidth, y float64) float64 {
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Rect(15, y, pageWidth-30, 10, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(20, y+7, "ITEM")
	pdf.Text(80, y+7, "BRAND")
	pdf.Text(110, y+7, "QTY")
	pdf.Text(130, y+7, "UNIT PRICE")
	pdf.Text(170, y+7, "TOTAL")

	y += 10
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)

	for i, line := range doc.Lines {
		if i%2 == 0 {
			pdf.SetFillColor(shadeColor[0], shadeColor[1], shadeColor[2])
			pdf.Rect(15, y-2, pageWidth-30, 8, "F")
		}

		pdf.Text(20, y+4, truncateName(line.Name))
		pdf.Text(80, y+4, line.Brand)
		pdf.Text(115, y+4, fmt.Sprintf("%d", line.Quantity))
		pdf.Text(130, y+4, money(line.UnitPrice))
		pdf.Text(170, y+4, money(line.Total))

		y += 8
	}
	return y
}

func (r *PDFRenderer) drawSummary(pdf *fpdf.Fpdf, doc *invoice.Document, pageWidth, y float64) float64 {
	x := pageWidth - 70
	b := doc.Breakdown

	pdf.SetFont("Helvetica", "", 9)

	pdf.SetTextColor(0, 0, 0)
	pdf.Text(x-25, y, "Subtotal:")
	pdf.Text(x, y, money(b.Subtotal))
	y += 7

	pdf.SetTextColor(savingColor[0], savingColor[1], savingColor[2])
	pdf.Text(x-25, y, "Discount (15%):")
	pdf.Text(x, y, "-"+money(b.DiscountAmount))
	y += 7

	pdf.SetTextColor(0, 0, 0)
	pdf.Text(x-25, y, "Tax (18%):")
	pdf.Text(x, y, money(b.TaxAmount))
	y += 7

	pdf.Text(x-25, y, "Shipping:")
	if b.ShippingFee == 0 {
		pdf.SetTextColor(savingColor[0], savingColor[1], savingColor[2])
		pdf.Text(x, y, "FREE")
	} else {
		pdf.Text(x, y, money(b.ShippingFee))
	}
	y += 12

	pdf.SetDrawColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Line(x-25, y-3, x+20, y-3)

	pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(x-25, y, "TOTAL:")
	pdf.Text(x, y, money(b.Total))
	return y
}

func (r *PDFRenderer) drawFooter(pdf *fpdf.Fpdf, doc *invoice.Document, y float64) {
	if len(doc.Footer) == 0 {
		return
	}

	pdf.SetTextColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(20, y, doc.Footer[0])

	y += 15
	pdf.SetTextColor(mutedColor[0], mutedColor[1], mutedColor[2])
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range doc.Footer[1:] {
		pdf.Text(20, y, line)
		y += 6
	}
}

// truncateName shortens names that would overflow the ITEM column.
func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > 20 {
		return string(runes[:17]) + "..."
	}
	return name
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
