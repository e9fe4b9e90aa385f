package orders

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/globals"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// InvoiceQRPayload returns a signed payload string: orderID|userID|timestamp|signature.
// Support can scan it to pull up the order without trusting the printout.
func InvoiceQRPayload(orderID, userID string) string {
	timestamp := time.Now().Unix()
	data := fmt.Sprintf("%s|%s|%d", orderID, userID, timestamp)

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintInvoice renders a PDF invoice for a placed order, with a signed QR code.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	userID := utils.GetUserIDFromRequest(r)
	order, err := findOwnOrder(ctx, ps.ByName("id"), userID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	if order.Status != models.OrderPlaced && order.Status != models.OrderShipped &&
		order.Status != models.OrderDelivered {
		apperr.Respond(w, apperr.BadRequest("Invoice is available after payment"))
		return
	}

	qrPNG, err := qrcode.Encode(InvoiceQRPayload(order.OrderID, userID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02 Jan 2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(90, 8, "Item")
	pdf.Cell(40, 8, "Variant")
	pdf.Cell(30, 8, "Qty")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.OrderItems {
		pdf.Cell(90, 8, item.ProductID)
		pdf.Cell(40, 8, item.StockID)
		pdf.Cell(30, 8, fmt.Sprintf("%d", item.Quantity))
		pdf.Ln(8)
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %d.%02d INR", order.TotalAmount/100, order.TotalAmount%100))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
