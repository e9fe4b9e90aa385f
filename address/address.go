package address

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type addressPayload struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// AddAddress stores a shipping address for the logged-in user.
func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.Unauthorized(""))
		return
	}

	var payload addressPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Line1 == "" || payload.City == "" || payload.State == "" || payload.Pincode == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	if payload.Phone != "" && !utils.ValidMobile(payload.Phone) {
		apperr.Respond(w, apperr.BadRequest("Invalid phone number"))
		return
	}

	addr := models.Address{
		AddressID: utils.GenerateID("a"),
		UserID:    userID,
		Line1:     payload.Line1,
		Line2:     payload.Line2,
		City:      payload.City,
		State:     payload.State,
		Pincode:   payload.Pincode,
		Phone:     payload.Phone,
		CreatedAt: time.Now(),
	}
	if _, err := db.AddressCollection.InsertOne(ctx, addr); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Address added successfully",
		"data":    utils.M{"address": addr},
	})
}

// GetMyAddresses lists the logged-in user's addresses.
func GetMyAddresses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.Unauthorized(""))
		return
	}

	cursor, err := db.AddressCollection.Find(ctx, bson.M{"userid": userID})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Address
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Address{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"addresses": list}})
}

// RemoveAddress deletes one address. The filter includes the owner so a user
// cannot remove someone else's address.
func RemoveAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.Unauthorized(""))
		return
	}

	res, err := db.AddressCollection.DeleteOne(ctx, bson.M{
		"addressid": ps.ByName("id"),
		"userid":    userID,
	})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Address not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Address removed successfully",
	})
}
