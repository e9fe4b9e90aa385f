package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/checkout"
	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CheckoutRequest is the cart a client submits for server-side revalidation.
type CheckoutRequest struct {
	Products []checkout.CartLine `json:"products"`
	Quantity int                 `json:"quantity"`
	Amount   int64               `json:"amount"`
}

// Checkout revalidates the submitted cart against authoritative stock data,
// reserves inventory and creates the order. The whole cart is rejected with
// the full error list if any line fails; nothing is persisted in that case.
func Checkout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	addressID := ps.ByName("addressid")

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("Checkout decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if addressID == "" || len(req.Products) == 0 || req.Quantity == 0 || req.Amount <= 0 {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	// The address must exist and belong to the caller.
	var addr models.Address
	err := db.AddressCollection.FindOne(ctx, bson.M{"addressid": addressID}).Decode(&addr)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && addr.UserID != userID) {
		apperr.Respond(w, apperr.NotFound("Address not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	store := checkout.NewStore()
	lineErrs, err := checkout.ValidateCart(ctx, store, req.Products, req.Amount)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	if len(lineErrs) > 0 {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"message": lineErrs,
			"status":  false,
		})
		return
	}

	// Validation passed; take the inventory before writing the order so the
	// out-of-stock check holds under concurrent checkouts.
	if err := reserveAll(ctx, store, req.Products); err != nil {
		var sold *errSoldOut
		if errors.As(err, &sold) {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"message": []checkout.LineError{{Product: sold.productID, Message: "Product is out of stock"}},
				"status":  false,
			})
			return
		}
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	items := make([]models.OrderItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, models.OrderItem{
			ProductID: p.ProductID,
			StockID:   p.StockID,
			Quantity:  p.Quantity,
		})
	}

	now := time.Now()
	order := models.Order{
		OrderID:     utils.GenerateID("o"),
		UserID:      userID,
		Status:      models.OrderProcessing,
		ReqType:     models.ReqPending,
		OrderItems:  items,
		AddressID:   addressID,
		TotalAmount: req.Amount,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		// The order did not make it in; give the inventory back.
		releaseAll(ctx, store, req.Products)
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Order created successfully",
		"orderId": order.OrderID,
	})
}
