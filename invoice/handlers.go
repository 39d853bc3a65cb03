package invoice

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"rongchapa/db"
	"rongchapa/globals"
	"rongchapa/models"
	"rongchapa/orders"
	"rongchapa/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DownloadOrderInvoice streams the invoice PDF for the batch an order
// belongs to. The owning customer and staff may download it.
func DownloadOrderInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var primary models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&primary)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}

	if role != models.RoleAdmin && primary.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	cursor, err := db.OrderCollection.Find(ctx, BatchFilter(&primary),
		options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order batch")
		return
	}
	defer cursor.Close(ctx)

	var batch []models.Order
	if err := cursor.All(ctx, &batch); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order batch")
		return
	}
	if len(batch) == 0 {
		batch = []models.Order{primary}
	}

	if err := orders.AttachSummaries(ctx, batch); err != nil {
		log.Println("invoice summaries error:", err)
	}

	layout := BuildInvoice(globals.Conf.BusinessName, &primary, batch, time.Now())
	pdfBytes, err := Render(layout)
	if err != nil {
		log.Println("invoice render error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", layout.InvoiceNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// DownloadPrintReceipt streams the security-deposit receipt for a print
// order.
func DownloadPrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	printOrderID := ps.ByName("printorderid")
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var printOrder models.PrintOrder
	err := db.PrintOrderCollection.FindOne(ctx, bson.M{"printorderid": printOrderID}).Decode(&printOrder)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Print order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load print order")
		return
	}

	if role != models.RoleAdmin && printOrder.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	pdfBytes, err := renderDepositReceipt(globals.Conf.BusinessName, &printOrder)
	if err != nil {
		log.Println("receipt render error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", printOrder.PrintOrderID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func renderDepositReceipt(business string, p *models.PrintOrder) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, business+" Deposit Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"Print Order: %s\nPaper: %s, %s, %s\nQuantity: %d\nCollection: %s\nDelivery: %s\nTransaction: %s",
		p.PrintOrderID,
		p.PaperSize.Label(), p.ColorMode, p.Sides,
		p.Quantity,
		p.CollectionTime.Format("02 Jan 2006 15:04"),
		p.DeliveryLocation,
		p.PaymentTransaction,
	), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Security Deposit: Tk %.2f", p.SecurityAmount), "", 1, "L", false, 0, "")

	if qrPNG, err := qrcode.Encode(p.PrintOrderID, qrcode.Medium, 128); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 150, 40, 35, 35, false, opts, 0, "")
	}

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 8, "Please present this receipt when collecting your prints.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
