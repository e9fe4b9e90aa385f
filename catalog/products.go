package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/filemgr"
	"vastra/models"
	"vastra/mq"
	"vastra/rdx"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCacheTTL = 2 * time.Minute

// CreateProduct accepts multipart form data: title, description and an image.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	file, header, err := filemgr.FormImage(r)
	if err != nil {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	img, err := filemgr.SaveImage(ctx, file, header, filemgr.EntityProduct)
	if err != nil {
		apperr.Respond(w, apperr.BadRequest(err.Error()))
		return
	}

	now := time.Now()
	product := models.Product{
		ProductID:   utils.GenerateID("p"),
		Title:       title,
		Description: description,
		ImageID:     img.ImageID,
		Categories:  []string{},
		Brands:      []string{},
		Stocks:      []string{},
		Offers:      []string{},
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	go mq.Emit(ctx, "product-created", models.Index{EntityType: "product", EntityId: product.ProductID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Product created successfully",
		"data":    utils.M{"product": product},
	})
}

// GetProduct serves one product, through a short redis cache.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")
	cacheKey := "product:" + productID

	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Product not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	body := utils.M{"status": "success", "data": utils.M{"product": product}}
	if raw, err := json.Marshal(body); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(raw), productCacheTTL); err != nil {
			log.Println("product cache set error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, body)
}

// GetProducts lists products with paging: ?limit=&skip=.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	if skip < 0 {
		skip = 0
	}

	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cursor, err := db.ProductCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Product
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"products": list}})
}

// SearchProducts matches product titles against ?q= (case-insensitive).
func SearchProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query().Get("q")
	if q == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{
		"title": bson.M{"$regex": q, "$options": "i"},
	})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	defer cursor.Close(ctx)

	var list []models.Product
	if err := cursor.All(ctx, &list); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if list == nil {
		list = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"products": list}})
}

// UpdateProductDetails edits title and description.
func UpdateProductDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")
	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.Description == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": bson.M{
			"title":       payload.Title,
			"description": payload.Description,
			"modified_at": time.Now(),
		}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Product not found"))
		return
	}

	rdx.RdxDel("product:" + productID)
	go mq.Emit(ctx, "product-updated", models.Index{EntityType: "product", EntityId: productID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Product updated successfully",
	})
}

// DeleteProduct removes the product and cascades to its stocks and images.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Product not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	for _, stockID := range product.Stocks {
		if err := deleteStockCascade(ctx, stockID); err != nil {
			apperr.Respond(w, apperr.ServerError(err))
			return
		}
	}
	if product.ImageID != "" {
		if err := filemgr.DeleteImage(ctx, product.ImageID, filemgr.EntityProduct); err != nil {
			log.Println("product image delete error:", err)
		}
	}

	if _, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": productID}); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	rdx.RdxDel("product:" + productID)
	go mq.Emit(ctx, "product-deleted", models.Index{EntityType: "product", EntityId: productID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "product deleted successfully",
	})
}

// --- brand / category attachment ---

func AddProductCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := link(ctx,
		db.ProductCollection, "productid", ps.ByName("productid"), "categories",
		db.CategoryCollection, "categoryid", ps.ByName("catid"), "products")
	if err != nil {
		apperr.Respond(w, notFoundAs(err, "Product or category not found"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "message": "Category added successfully"})
}

func RemoveProductCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := unlink(ctx,
		db.ProductCollection, "productid", ps.ByName("productid"), "categories",
		db.CategoryCollection, "categoryid", ps.ByName("catid"), "products")
	if err != nil {
		apperr.Respond(w, notFoundAs(err, "Product or category not found"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "message": "Category removed successfully"})
}

func AddProductBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := link(ctx,
		db.ProductCollection, "productid", ps.ByName("productid"), "brands",
		db.BrandCollection, "brandid", ps.ByName("brandid"), "products")
	if err != nil {
		apperr.Respond(w, notFoundAs(err, "Product or brand not found"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "message": "Brand added successfully"})
}

func RemoveProductBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := unlink(ctx,
		db.ProductCollection, "productid", ps.ByName("productid"), "brands",
		db.BrandCollection, "brandid", ps.ByName("brandid"), "products")
	if err != nil {
		apperr.Respond(w, notFoundAs(err, "Product or brand not found"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "message": "Brand removed successfully"})
}

// notFoundAs swaps the generic not-found from the link helpers for a message
// naming both entities.
func notFoundAs(err error, msg string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Status == http.StatusNotFound {
		return apperr.NotFound(msg)
	}
	return err
}
