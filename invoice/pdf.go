package invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Render draws the layout into a paginated A4 PDF and returns its bytes.
func Render(layout Layout) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, layout.Business+" Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 6, "Invoice #: "+layout.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+layout.Date.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Status: "+layout.Status, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Customer block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Customer Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Name: "+orNA(layout.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Phone: "+orNA(layout.CustomerPhone), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 6, "Address: "+orNA(layout.CustomerAddress), "", "L", false)
	pdf.Ln(6)

	// QR of the invoice number, upper right
	if qrPNG, err := qrcode.Encode(layout.InvoiceNumber, qrcode.Medium, 128); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 165, 18, 28, 28, false, opts, 0, "")
	}

	// Line-item table
	pdf.SetFillColor(243, 244, 246)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range layout.Lines {
		pdf.CellFormat(90, 8, line.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, money(line.UnitPrice), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, money(line.Total), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(8)

	// Delivery and payment box, right aligned
	boxX := 110.0
	boxY := pdf.GetY()
	pdf.Rect(boxX, boxY, 85, 52, "D")

	pdf.SetXY(boxX+4, boxY+3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Delivery Info", "", 1, "L", false, 0, "")
	pdf.SetX(boxX + 4)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, "Zone: "+layout.DeliveryZone, "", 1, "L", false, 0, "")
	pdf.SetX(boxX + 4)
	pdf.CellFormat(0, 5, "Charge: "+money(layout.DeliveryCharge), "", 1, "L", false, 0, "")

	pdf.SetXY(boxX+4, boxY+24)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Payment Summary", "", 1, "L", false, 0, "")
	pdf.SetX(boxX + 4)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, "Subtotal: "+money(layout.Subtotal), "", 1, "L", false, 0, "")
	pdf.SetX(boxX + 4)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, "Total Due: "+money(layout.Total), "", 1, "L", false, 0, "")
	pdf.SetX(boxX + 4)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, "Notes: "+orNA(layout.BillingNotes), "", 1, "L", false, 0, "")

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 8, "Thank you for choosing "+layout.Business+"!", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("Tk %.2f", v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
