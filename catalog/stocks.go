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
	"vastra/rdx"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type stockPayload struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Amount   int64  `json:"amount"`
	Quantity int    `json:"quantity"`
}

// CreateStock adds a color/size variant to a product. A product cannot carry
// two stocks with the same color and size.
func CreateStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var payload stockPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Color == "" || payload.Size == "" || payload.Amount <= 0 || payload.Quantity < 0 {
		apperr.Respond(w, apperr.MissingFields())
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

	count, err := db.StockCollection.CountDocuments(ctx, bson.M{
		"productid": productID,
		"color":     payload.Color,
		"size":      payload.Size,
	})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if count > 0 {
		apperr.Respond(w, apperr.AlreadyExists("Stock with this color and size already exists"))
		return
	}

	now := time.Now()
	stock := models.Stock{
		StockID:    utils.GenerateID("s"),
		ProductID:  productID,
		Color:      payload.Color,
		Size:       payload.Size,
		Amount:     payload.Amount,
		Quantity:   payload.Quantity,
		Images:     []string{},
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if _, err := db.StockCollection.InsertOne(ctx, stock); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	if _, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$addToSet": bson.M{"stocks": stock.StockID}, "$set": bson.M{"modified_at": now}},
	); err != nil {
		_, _ = db.StockCollection.DeleteOne(ctx, bson.M{"stockid": stock.StockID})
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	rdx.RdxDel("product:" + productID)
	go mq.Emit(ctx, "stock-created", models.Index{EntityType: "stock", EntityId: stock.StockID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Stock created successfully",
		"data":    utils.M{"stock": stock},
	})
}

func GetStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var stock models.Stock
	err := db.StockCollection.FindOne(ctx, bson.M{"stockid": ps.ByName("id")}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Stock not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"stock": stock}})
}

// UpdateStock edits the base price and quantity. Color and size identify the
// variant and stay fixed once created.
func UpdateStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stockID := ps.ByName("id")

	var payload struct {
		Amount   int64 `json:"amount"`
		Quantity int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Amount <= 0 || payload.Quantity < 0 {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	res, err := db.StockCollection.UpdateOne(ctx,
		bson.M{"stockid": stockID},
		bson.M{"$set": bson.M{
			"amount":      payload.Amount,
			"quantity":    payload.Quantity,
			"modified_at": time.Now(),
		}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Stock not found"))
		return
	}

	go mq.Emit(ctx, "stock-updated", models.Index{EntityType: "stock", EntityId: stockID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Stock updated successfully",
	})
}

// DeleteStock removes one variant and its back-reference on the product.
func DeleteStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stockID := ps.ByName("id")

	var stock models.Stock
	err := db.StockCollection.FindOne(ctx, bson.M{"stockid": stockID}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Stock not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	if err := deleteStockCascade(ctx, stockID); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if _, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": stock.ProductID},
		bson.M{"$pull": bson.M{"stocks": stockID}},
	); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	rdx.RdxDel("product:" + stock.ProductID)
	go mq.Emit(ctx, "stock-deleted", models.Index{EntityType: "stock", EntityId: stockID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Stock deleted successfully",
	})
}

// deleteStockCascade drops the stock document and its images. The caller owns
// removing the product's back-reference when the product itself survives.
func deleteStockCascade(ctx context.Context, stockID string) error {
	var stock models.Stock
	err := db.StockCollection.FindOne(ctx, bson.M{"stockid": stockID}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, imageID := range stock.Images {
		if err := filemgr.DeleteImage(ctx, imageID, filemgr.EntityStock); err != nil {
			log.Println("stock image delete error:", err)
		}
	}
	_, err = db.StockCollection.DeleteOne(ctx, bson.M{"stockid": stockID})
	return err
}

// AddStockImage attaches one more image to a stock variant.
func AddStockImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stockID := ps.ByName("id")

	file, header, err := filemgr.FormImage(r)
	if err != nil {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	defer file.Close()

	img, err := filemgr.SaveImage(ctx, file, header, filemgr.EntityStock)
	if err != nil {
		apperr.Respond(w, apperr.BadRequest(err.Error()))
		return
	}

	res, err := db.StockCollection.UpdateOne(ctx,
		bson.M{"stockid": stockID},
		bson.M{"$addToSet": bson.M{"images": img.ImageID}, "$set": bson.M{"modified_at": time.Now()}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		_ = filemgr.DeleteImage(ctx, img.ImageID, filemgr.EntityStock)
		apperr.Respond(w, apperr.NotFound("Stock not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Image added successfully",
		"data":    utils.M{"image": img},
	})
}

// RemoveStockImage detaches and deletes one stock image.
func RemoveStockImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stockID := ps.ByName("id")
	imageID := ps.ByName("imageid")

	res, err := db.StockCollection.UpdateOne(ctx,
		bson.M{"stockid": stockID},
		bson.M{"$pull": bson.M{"images": imageID}},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("Stock not found"))
		return
	}

	if err := filemgr.DeleteImage(ctx, imageID, filemgr.EntityStock); err != nil {
		log.Println("stock image delete error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Image removed successfully",
	})
}

// GetStockSizes lists the sizes available for a product in one color.
func GetStockSizes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	color := r.URL.Query().Get("color")
	if color == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	sizes, err := db.StockCollection.Distinct(ctx, "size", bson.M{
		"productid": ps.ByName("productid"),
		"color":     color,
	})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"sizes": sizes}})
}

// GetStockColors lists the colors available for a product in one size.
func GetStockColors(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	size := r.URL.Query().Get("size")
	if size == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	colors, err := db.StockCollection.Distinct(ctx, "color", bson.M{
		"productid": ps.ByName("productid"),
		"size":      size,
	})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"colors": colors}})
}

// GetStockByVariant resolves the stock for a product's color+size pair, the
// lookup the storefront needs before adding a line to the cart.
func GetStockByVariant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	color := r.URL.Query().Get("color")
	size := r.URL.Query().Get("size")
	if color == "" || size == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	var stock models.Stock
	err := db.StockCollection.FindOne(ctx, bson.M{
		"productid": ps.ByName("productid"),
		"color":     color,
		"size":      size,
	}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("Stock not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"stock": stock}})
}
