package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/filemgr"
	"vastra/models"
	"vastra/mq"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateBrand accepts multipart form data: name, description and a logo image.
func CreateBrand(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	file, header, err := filemgr.FormImage(r)
	if err != nil {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	description := r.FormValue("description")
	if name == "" || description == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	count, err := db.BrandCollection.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if count > 0 {
		apperr.Respond(w, apperr.AlreadyExists("Brand already exists"))
		return
	}

	img, err := filemgr.SaveImage(ctx, file, header, filemgr.EntityBrand)
	if err != nil {
		apperr.Respond(w, apperr.BadRequest(err.Error()))
		return
	}

	brand := models.Brand{
		BrandID:     utils.GenerateID("b"),
		Name:        name,
		Description: description,
		ImageID:     img.ImageID,
		Products:    []string{},
		CreatedAt:   time.Now(),
	}
	if _, err := db.BrandCollection.InsertOne(ctx, brand); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	go mq.Emit(ctx, "brand-created", models.Index{EntityType: "brand", EntityId: brand.BrandID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Brand created successfully",
		"data":    utils.M{"brand": brand},
	})
}

func GetBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var brand models.Brand
	err := db.BrandCollection.FindOne(ctx, bson.M{"brandid": ps.ByName("id")}).Decode(&brand)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Brand not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"brand": brand}})
}

func GetBrands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.BrandCollection.Find(ctx, bson.M{})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Brand
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Brand{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"brands": list}})
}

// UpdateBrand edits name and description. The new name must not collide with
// another brand.
func UpdateBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	brandID := ps.ByName("id")

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Name == "" || payload.Description == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	count, err := db.BrandCollection.CountDocuments(ctx, bson.M{
		"name":    payload.Name,
		"brandid": bson.M{"$ne": brandID},
	})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if count > 0 {
		apperr.Respond(w, apperr.AlreadyExists("Brand already exists"))
		return
	}

	res, err := db.BrandCollection.UpdateOne(ctx,
		bson.M{"brandid": brandID},
		bson.M{"$set": bson.M{"name": payload.Name, "description": payload.Description}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Brand not found"))
		return
	}

	go mq.Emit(ctx, "brand-updated", models.Index{EntityType: "brand", EntityId: brandID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Brand updated successfully",
	})
}

// UpdateBrandImage replaces the brand logo. The old image is deleted only after
// the new one is attached.
func UpdateBrandImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	brandID := ps.ByName("id")

	file, header, err := filemgr.FormImage(r)
	if err != nil {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	defer file.Close()

	var brand models.Brand
	err = db.BrandCollection.FindOne(ctx, bson.M{"brandid": brandID}).Decode(&brand)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Brand not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	img, err := filemgr.SaveImage(ctx, file, header, filemgr.EntityBrand)
	if err != nil {
		apperr.Respond(w, apperr.BadRequest(err.Error()))
		return
	}

	if _, err := db.BrandCollection.UpdateOne(ctx,
		bson.M{"brandid": brandID},
		bson.M{"$set": bson.M{"imageid": img.ImageID}},
	); err != nil {
		_ = filemgr.DeleteImage(ctx, img.ImageID, filemgr.EntityBrand)
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	if brand.ImageID != "" {
		if err := filemgr.DeleteImage(ctx, brand.ImageID, filemgr.EntityBrand); err != nil {
			log.Println("brand image delete error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Brand image updated successfully",
		"data":    utils.M{"image": img},
	})
}

// DeleteBrand removes the brand and its back-reference from every product.
func DeleteBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	brandID := ps.ByName("id")

	var brand models.Brand
	err := db.BrandCollection.FindOne(ctx, bson.M{"brandid": brandID}).Decode(&brand)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Brand not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	if _, err := db.ProductCollection.UpdateMany(ctx,
		bson.M{"brands": brandID},
		bson.M{"$pull": bson.M{"brands": brandID}},
	); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if brand.ImageID != "" {
		if err := filemgr.DeleteImage(ctx, brand.ImageID, filemgr.EntityBrand); err != nil {
			log.Println("brand image delete error:", err)
		}
	}
	if _, err := db.BrandCollection.DeleteOne(ctx, bson.M{"brandid": brandID}); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	go mq.Emit(ctx, "brand-deleted", models.Index{EntityType: "brand", EntityId: brandID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Brand deleted successfully",
	})
}
