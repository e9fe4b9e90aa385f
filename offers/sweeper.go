package offers

import (
	"context"
	"log"
	"time"

	"vastra/db"
	"vastra/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StartExpirySweeper deletes expired offers once a day, resetting the
// discounted price on every affected stock through the same detach path as
// manual removal. Runs until the process exits.
func StartExpirySweeper() {
	SweepExpiredOffers(context.Background())

	ticker := time.NewTicker(24 * time.Hour)
	for range ticker.C {
		SweepExpiredOffers(context.Background())
	}
}

// SweepExpiredOffers processes offers whose end_at has passed, one at a time.
// An offer already removed by a concurrent manual delete is not an error.
func SweepExpiredOffers(ctx context.Context) {
	cursor, err := db.OfferCollection.Find(ctx, bson.M{"end_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		log.Println("offer sweep find error:", err)
		return
	}
	defer cursor.Close(ctx)

	var expired []models.Offer
	if err := cursor.All(ctx, &expired); err != nil {
		log.Println("offer sweep cursor error:", err)
		return
	}

	for i := range expired {
		offer := &expired[i]
		if err := detachAndDelete(ctx, offer); err != nil {
			// Leave it for the next sweep; stocks keep a valid offer link
			// until the detach fully succeeds.
			log.Printf("offer sweep: removing %s failed: %v", offer.OfferID, err)
			continue
		}
		log.Printf("offer sweep: removed expired offer %s", offer.OfferID)
	}
}
