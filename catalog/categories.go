package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/models"
	"vastra/mq"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type categoryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.Description == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	count, err := db.CategoryCollection.CountDocuments(ctx, bson.M{"title": payload.Title})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if count > 0 {
		apperr.Respond(w, apperr.AlreadyExists("Category already exists"))
		return
	}

	category := models.Category{
		CategoryID:  utils.GenerateID("c"),
		Title:       payload.Title,
		Description: payload.Description,
		Products:    []string{},
		CreatedAt:   time.Now(),
	}
	if _, err := db.CategoryCollection.InsertOne(ctx, category); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	go mq.Emit(ctx, "category-created", models.Index{EntityType: "category", EntityId: category.CategoryID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Category created successfully",
		"data":    utils.M{"category": category},
	})
}

func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": ps.ByName("id")}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Category not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"category": category}})
}

func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoryCollection.Find(ctx, bson.M{})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Category
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"categories": list}})
}

func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.Description == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	res, err := db.CategoryCollection.UpdateOne(ctx,
		bson.M{"categoryid": ps.ByName("id")},
		bson.M{"$set": bson.M{"title": payload.Title, "description": payload.Description}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Category not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Category updated successfully",
	})
}

// DeleteCategory removes the category and its back-reference from every
// product.
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("id")

	if _, err := db.ProductCollection.UpdateMany(ctx,
		bson.M{"categories": categoryID},
		bson.M{"$pull": bson.M{"categories": categoryID}},
	); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	res, err := db.CategoryCollection.DeleteOne(ctx, bson.M{"categoryid": categoryID})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.DeletedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Category not found"))
		return
	}

	go mq.Emit(ctx, "category-deleted", models.Index{EntityType: "category", EntityId: categoryID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Category deleted successfully",
	})
}
