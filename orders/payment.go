package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/globals"
	"vastra/mailer"
	"vastra/models"
	"vastra/pay"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func findOwnOrder(ctx context.Context, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("Order not exist")
	}
	if err != nil {
		return nil, apperr.ServerError(err)
	}
	if order.UserID != userID {
		return nil, apperr.NotFound("Order not exist")
	}
	return &order, nil
}

// CreatePaymentOrder registers the order's total with the payment gateway and
// stores the gateway order id for later verification.
func CreatePaymentOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	order, err := findOwnOrder(ctx, ps.ByName("id"), userID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	intent, err := pay.CreateIntent(order.TotalAmount, "INR", map[string]string{
		"user":  order.UserID,
		"order": order.OrderID,
	})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	_, err = db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID},
		bson.M{"$set": bson.M{"gateway_order_id": intent.GatewayOrderID, "modified_at": time.Now()}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"order":   intent,
	})
}

type verifyRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewaySignature string `json:"gateway_signature"`
}

// alreadySettled reports whether a successful gateway callback has been
// processed for this order. Approval is permanent: it holds through later
// fulfillment states (Shipped, Delivered).
func alreadySettled(o *models.Order) bool {
	return o.ReqType == models.ReqApproved
}

func setOrderOutcome(ctx context.Context, orderID, status, reqType string) error {
	_, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"status": status, "req_type": reqType, "modified_at": time.Now()}},
	)
	return err
}

func userEmail(ctx context.Context, userID string) string {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return ""
	}
	return user.Email
}

// VerifyPayment recomputes the gateway callback signature and settles the
// order either way. Emails are fire-and-forget: the state transition stands
// even if the notification fails.
func VerifyPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	order, err := findOwnOrder(ctx, ps.ByName("id"), userID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	// A repeated callback for a settled order returns the stored outcome
	// instead of writing a second transaction.
	if alreadySettled(order) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"message": "Payment successful",
			"transaction": utils.M{
				"transaction_id": order.TransactionID,
				"order_id":       order.OrderID,
			},
		})
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	email := userEmail(ctx, userID)

	fail := func() {
		if err := setOrderOutcome(ctx, order.OrderID, models.OrderFailed, models.ReqRejected); err != nil {
			apperr.Respond(w, apperr.ServerError(err))
			return
		}
		if email != "" {
			mailer.SendAsync(email, "Transaction Failed", mailer.PaymentFailedBody(order.OrderID))
		}
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"message": "Invalid Payment",
			"status":  false,
		})
	}

	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.GatewaySignature == "" {
		fail()
		return
	}

	// The callback must reference the gateway order registered for this order.
	if order.GatewayOrderID == "" || req.GatewayOrderID != order.GatewayOrderID {
		fail()
		return
	}

	if !pay.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, globals.PaymentSecret) {
		fail()
		return
	}

	if err := setOrderOutcome(ctx, order.OrderID, models.OrderPlaced, models.ReqApproved); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	txn := models.Transaction{
		TransactionID:    utils.GenerateID("t"),
		UserID:           userID,
		OrderID:          order.OrderID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		GatewaySignature: req.GatewaySignature,
		CreatedAt:        time.Now(),
	}
	if _, err := db.TransactionCollection.InsertOne(ctx, txn); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	_, _ = db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": order.OrderID},
		bson.M{"$set": bson.M{"transaction_id": txn.TransactionID}},
	)

	if email != "" {
		mailer.SendAsync(email, "Transaction Successful", mailer.PaymentSuccessBody(order.OrderID, txn.TransactionID))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Payment successful",
		"transaction": utils.M{
			"transaction_id": txn.TransactionID,
			"order_id":       order.OrderID,
		},
	})
}
