package orders

import (
	"context"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrder returns one of the caller's orders.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	order, err := findOwnOrder(ctx, ps.ByName("id"), userID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID}, findOptions)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": list})
}

// UpdateOrderStatus lets an admin move an order through fulfillment.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	status := r.URL.Query().Get("status")

	switch status {
	case models.OrderShipped, models.OrderDelivered, models.OrderCancelled:
	default:
		apperr.Respond(w, apperr.BadRequest("Invalid order status"))
		return
	}

	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"status": status, "modified_at": time.Now()}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Order not exist"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": status})
}
