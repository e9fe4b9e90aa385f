package coupons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type couponPayload struct {
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Discount    int64     `json:"discount"`
	EndAt       time.Time `json:"end_at"`
}

// CreateCoupon registers a percentage discount code. Codes are stored upper
// case and must be unique.
func CreateCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload couponPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Code == "" || payload.Title == "" || payload.EndAt.IsZero() {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	if payload.Discount <= 0 || payload.Discount > 100 {
		apperr.Respond(w, apperr.BadRequest("Discount must be between 1 and 100"))
		return
	}
	if !payload.EndAt.After(time.Now()) {
		apperr.Respond(w, apperr.BadRequest("End date must be in the future"))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))

	count, err := db.CouponCollection.CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if count > 0 {
		apperr.Respond(w, apperr.AlreadyExists("Coupon code already exists"))
		return
	}

	coupon := models.Coupon{
		CouponID:    utils.GenerateID("cp"),
		Code:        code,
		Title:       payload.Title,
		Description: payload.Description,
		Discount:    payload.Discount,
		EndAt:       payload.EndAt,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if _, err := db.CouponCollection.InsertOne(ctx, coupon); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Coupon created successfully",
		"data":    utils.M{"coupon": coupon},
	})
}

func GetCoupons(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CouponCollection.Find(ctx, bson.M{})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Coupon
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Coupon{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"coupons": list}})
}

// UpdateCoupon edits a coupon's title, description, discount and expiry. The
// code itself is immutable; clients may already hold it.
func UpdateCoupon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Discount    int64     `json:"discount"`
		EndAt       time.Time `json:"end_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.EndAt.IsZero() {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	if payload.Discount <= 0 || payload.Discount > 100 {
		apperr.Respond(w, apperr.BadRequest("Discount must be between 1 and 100"))
		return
	}

	res, err := db.CouponCollection.UpdateOne(ctx,
		bson.M{"couponid": ps.ByName("id")},
		bson.M{"$set": bson.M{
			"title":       payload.Title,
			"description": payload.Description,
			"discount":    payload.Discount,
			"end_at":      payload.EndAt,
		}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Coupon not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Coupon updated successfully",
	})
}

// DeactivateCoupon turns a coupon off without deleting its history.
func DeactivateCoupon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.CouponCollection.UpdateOne(ctx,
		bson.M{"couponid": ps.ByName("id")},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Coupon not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Coupon deactivated successfully",
	})
}

func DeleteCoupon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.CouponCollection.DeleteOne(ctx, bson.M{"couponid": ps.ByName("id")})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Coupon not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Coupon deleted successfully",
	})
}

// Validate checks a coupon code against a cart amount and returns the
// absolute discount in minor units.
func Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Code   string `json:"code"`
		Amount int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Code == "" || payload.Amount <= 0 {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))

	var coupon models.Coupon
	err := db.CouponCollection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Invalid coupon code"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	if !coupon.Active || coupon.EndAt.Before(time.Now()) {
		apperr.Respond(w, apperr.BadRequest("Coupon has expired"))
		return
	}

	discount := (payload.Amount * coupon.Discount) / 100
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status": "success",
		"data": utils.M{
			"code":        coupon.Code,
			"discount":    discount,
			"final_total": payload.Amount - discount,
		},
	})
}
