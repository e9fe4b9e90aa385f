package offers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type offerPayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Discount    int64     `json:"discount"`
	EndAt       time.Time `json:"end_at"`
}

// CreateOffer registers a standalone discount campaign; it applies to nothing
// until AddOffer links it to a product.
func CreateOffer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload offerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.Description == "" || payload.Discount == 0 || payload.EndAt.IsZero() {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	if payload.Discount < 0 || payload.Discount > 100 {
		apperr.Respond(w, apperr.BadRequest("Discount must be between 1 and 100"))
		return
	}

	now := time.Now()
	offer := models.Offer{
		OfferID:     utils.GenerateID("of"),
		Title:       payload.Title,
		Description: payload.Description,
		Discount:    payload.Discount,
		Products:    []string{},
		CreatedAt:   now,
		EndAt:       payload.EndAt,
		ModifiedAt:  now,
	}

	if _, err := db.OfferCollection.InsertOne(ctx, offer); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Offer created successfully",
		"data":    utils.M{"offer": offer},
	})
}

// UpdateOffer edits title, description and expiry. The discount percentage is
// immutable once created; re-pricing applied stocks would race with checkout.
func UpdateOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	offerID := ps.ByName("id")
	var payload offerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.Description == "" || payload.EndAt.IsZero() {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	res := db.OfferCollection.FindOneAndUpdate(ctx,
		bson.M{"offerid": offerID},
		bson.M{"$set": bson.M{
			"title":       payload.Title,
			"description": payload.Description,
			"end_at":      payload.EndAt,
			"modified_at": time.Now(),
		}},
	)
	var offer models.Offer
	if err := res.Decode(&offer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperr.Respond(w, apperr.NotFound("Offer not found"))
			return
		}
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Offer updated successfully",
	})
}

func GetOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var offer models.Offer
	err := db.OfferCollection.FindOne(ctx, bson.M{"offerid": ps.ByName("id")}).Decode(&offer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Offer not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"offer": offer}})
}

func GetOffers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.OfferCollection.Find(ctx, bson.M{})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Offer
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Offer{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"offers": list}})
}

// DeleteOffer detaches the offer from every product it is applied to, resets
// the affected stocks' discounted price and removes the offer record. The
// detach path is the same one the expiry sweeper runs.
func DeleteOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var offer models.Offer
	err := db.OfferCollection.FindOne(ctx, bson.M{"offerid": ps.ByName("id")}).Decode(&offer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Offer not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	if err := detachAndDelete(ctx, &offer); err != nil {
		apperr.Respond(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Offer deleted successfully",
	})
}
