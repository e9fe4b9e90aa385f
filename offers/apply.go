package offers

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Offer apply/remove is serialized per product so a concurrent checkout never
// observes a half-updated discount across a product's stocks. Locks are never
// evicted: the map grows with the number of distinct products that ever held
// an offer, the same unbounded-map shape as the rate limiter's visitors.
var (
	productMu    sync.Mutex
	productLocks = make(map[string]*sync.Mutex)
)

func lockProduct(productID string) *sync.Mutex {
	productMu.Lock()
	defer productMu.Unlock()
	if mu, ok := productLocks[productID]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	productLocks[productID] = mu
	return mu
}

// errNotLinked reports that the (product, offer) pair is not currently
// connected. Manual removal surfaces it; the sweeper treats it as done.
var errNotLinked = errors.New("offer not applied to product")

// lookupFailure maps a missing document to NotFound; any other lookup error
// is a server fault, not a client one.
func lookupFailure(err error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(msg)
	}
	return apperr.ServerError(err)
}

// DiscountedPrice computes the unit price after applying a percentage
// discount, in minor units: amount - (amount * discount / 100).
func DiscountedPrice(amount, discount int64) int64 {
	return amount - (amount*discount)/100
}

// AddOffer applies an offer to a product: every stock of the product gets its
// discounted price, then both back-references are linked. A product can hold
// only one offer at a time.
func AddOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prodID := ps.ByName("prodid")
	offerID := ps.ByName("id")
	if prodID == "" || offerID == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	mu := lockProduct(prodID)
	mu.Lock()
	defer mu.Unlock()

	var product models.Product
	var offer models.Offer
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": prodID}).Decode(&product); err != nil {
		apperr.Respond(w, lookupFailure(err, "Product or offer not found"))
		return
	}
	if err := db.OfferCollection.FindOne(ctx, bson.M{"offerid": offerID}).Decode(&offer); err != nil {
		apperr.Respond(w, lookupFailure(err, "Product or offer not found"))
		return
	}

	if len(product.Offers) != 0 {
		apperr.Respond(w, apperr.AlreadyExists("This product already has one offer"))
		return
	}
	if slices.Contains(offer.Products, prodID) {
		apperr.Respond(w, apperr.AlreadyExists("offer is already applied"))
		return
	}

	// Discount every stock first. If one fails, roll the others back so a
	// concurrent checkout never prices against a partially discounted product.
	done := make([]string, 0, len(product.Stocks))
	for _, stockID := range product.Stocks {
		var stock models.Stock
		if err := db.StockCollection.FindOne(ctx, bson.M{"stockid": stockID}).Decode(&stock); err != nil {
			resetStocks(ctx, done)
			apperr.Respond(w, apperr.ServerError(err))
			return
		}
		price := DiscountedPrice(stock.Amount, offer.Discount)
		_, err := db.StockCollection.UpdateOne(ctx,
			bson.M{"stockid": stockID},
			bson.M{"$set": bson.M{"offer_price": price, "modified_at": time.Now()}},
		)
		if err != nil {
			resetStocks(ctx, done)
			apperr.Respond(w, apperr.ServerError(err))
			return
		}
		done = append(done, stockID)
	}

	if err := linkOffer(ctx, prodID, offerID); err != nil {
		resetStocks(ctx, done)
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "Offer is applied on " + product.Title,
	})
}

// RemoveProductOffer detaches an applied offer from one product and resets
// the discounted prices.
func RemoveProductOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prodID := ps.ByName("prodid")
	offerID := ps.ByName("id")
	if prodID == "" || offerID == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	err := removeOfferFromProduct(ctx, prodID, offerID)
	if errors.Is(err, errNotLinked) {
		apperr.Respond(w, apperr.AlreadyExists("This Offer has not been applied on this Product"))
		return
	}
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Offer removed successfully",
	})
}

// removeOfferFromProduct is the single detach path shared by manual removal,
// offer deletion and the expiry sweeper. Stocks are reset before the
// references are dropped: on a partial failure the link survives and a retry
// resets the remaining stocks.
func removeOfferFromProduct(ctx context.Context, prodID, offerID string) error {
	mu := lockProduct(prodID)
	mu.Lock()
	defer mu.Unlock()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": prodID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errNotLinked
	}
	if err != nil {
		return apperr.ServerError(err)
	}

	if !slices.Contains(product.Offers, offerID) {
		return errNotLinked
	}

	for _, stockID := range product.Stocks {
		_, err := db.StockCollection.UpdateOne(ctx,
			bson.M{"stockid": stockID},
			bson.M{"$unset": bson.M{"offer_price": ""}, "$set": bson.M{"modified_at": time.Now()}},
		)
		if err != nil {
			return apperr.ServerError(err)
		}
	}

	return unlinkOffer(ctx, prodID, offerID)
}

// linkOffer and unlinkOffer mutate both sides of the product<->offer
// relationship together, keeping the back-references symmetric.
func linkOffer(ctx context.Context, prodID, offerID string) error {
	if _, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": prodID},
		bson.M{"$addToSet": bson.M{"offers": offerID}},
	); err != nil {
		return err
	}
	_, err := db.OfferCollection.UpdateOne(ctx,
		bson.M{"offerid": offerID},
		bson.M{"$addToSet": bson.M{"products": prodID}},
	)
	return err
}

func unlinkOffer(ctx context.Context, prodID, offerID string) error {
	if _, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": prodID},
		bson.M{"$pull": bson.M{"offers": offerID}},
	); err != nil {
		return apperr.ServerError(err)
	}
	if _, err := db.OfferCollection.UpdateOne(ctx,
		bson.M{"offerid": offerID},
		bson.M{"$pull": bson.M{"products": prodID}},
	); err != nil {
		return apperr.ServerError(err)
	}
	return nil
}

func resetStocks(ctx context.Context, stockIDs []string) {
	for _, stockID := range stockIDs {
		_, _ = db.StockCollection.UpdateOne(ctx,
			bson.M{"stockid": stockID},
			bson.M{"$unset": bson.M{"offer_price": ""}},
		)
	}
}

// detachAndDelete removes the offer from every linked product, then deletes
// the offer record. Used by DeleteOffer and the expiry sweeper.
func detachAndDelete(ctx context.Context, offer *models.Offer) error {
	for _, prodID := range offer.Products {
		err := removeOfferFromProduct(ctx, prodID, offer.OfferID)
		if err != nil && !errors.Is(err, errNotLinked) {
			return err
		}
	}
	if _, err := db.OfferCollection.DeleteOne(ctx, bson.M{"offerid": offer.OfferID}); err != nil {
		return apperr.ServerError(err)
	}
	return nil
}
