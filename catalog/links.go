package catalog

import (
	"context"

	"vastra/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// link and unlink keep the duplicated many-to-many back-reference arrays
// (product<->brand, product<->category) symmetric: both sides are mutated in
// one place, with $addToSet/$pull so replays cannot skew the arrays. A failed
// first update leaves both sides untouched; a failed second update is
// reported so the caller retries the idempotent pair.
func link(ctx context.Context, a *mongo.Collection, aKey, aID, aField string,
	b *mongo.Collection, bKey, bID, bField string) error {

	resA, err := a.UpdateOne(ctx, bson.M{aKey: aID}, bson.M{"$addToSet": bson.M{aField: bID}})
	if err != nil {
		return apperr.ServerError(err)
	}
	if resA.MatchedCount == 0 {
		return apperr.NotFound("")
	}

	resB, err := b.UpdateOne(ctx, bson.M{bKey: bID}, bson.M{"$addToSet": bson.M{bField: aID}})
	if err != nil {
		return apperr.ServerError(err)
	}
	if resB.MatchedCount == 0 {
		// First side matched, second did not: undo so the arrays stay symmetric.
		_, _ = a.UpdateOne(ctx, bson.M{aKey: aID}, bson.M{"$pull": bson.M{aField: bID}})
		return apperr.NotFound("")
	}
	return nil
}

func unlink(ctx context.Context, a *mongo.Collection, aKey, aID, aField string,
	b *mongo.Collection, bKey, bID, bField string) error {

	resA, err := a.UpdateOne(ctx, bson.M{aKey: aID}, bson.M{"$pull": bson.M{aField: bID}})
	if err != nil {
		return apperr.ServerError(err)
	}
	resB, err := b.UpdateOne(ctx, bson.M{bKey: bID}, bson.M{"$pull": bson.M{bField: aID}})
	if err != nil {
		return apperr.ServerError(err)
	}
	if resA.MatchedCount == 0 || resB.MatchedCount == 0 {
		return apperr.NotFound("")
	}
	return nil
}
