package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SequenceCollection hands out request sequence numbers. Each calendar day
// has its own counter so concurrent submissions can never mint the same
// request ID.
type SequenceCollection interface {
	NextRequestSequence(ctx context.Context, day string) (int64, error)
}

// MongoSequenceCollection implements SequenceCollection over a counters collection.
type MongoSequenceCollection struct {
	Collection *mongo.Collection
}

// NextRequestSequence atomically increments and returns the counter for the
// given day ("YYYYMMDD"). The counter document is created on first use.
func (c *MongoSequenceCollection) NextRequestSequence(ctx context.Context, day string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "vehicleRequests-" + day},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
