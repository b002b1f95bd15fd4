package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nextOrderNumber mints the next human-readable order number from an
// atomically incremented counter document.
func nextOrderNumber(ctx context.Context, db *mongo.Database, prefix string) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": "orders"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", err
	}

	return formatOrderNumber(prefix, counter.Seq), nil
}

func formatOrderNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// fallbackOrderNumber derives an identifier from the clock. Collision-prone,
// only used when the counter is unreachable so checkout can still complete.
func fallbackOrderNumber(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// generateOrderNumber degrades silently to the timestamp fallback on counter
// failure. The failure is logged, the caller never sees it.
func generateOrderNumber(ctx context.Context, db *mongo.Database, prefix string) string {
	number, err := nextOrderNumber(ctx, db, prefix)
	if err != nil {
		log.Printf("[ORDER] order number generation failed, using timestamp fallback: %v", err)
		return fallbackOrderNumber(prefix)
	}
	return number
}
