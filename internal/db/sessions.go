package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// SessionRunner applies a function's writes as one atomic unit. Every
// lifecycle operation that touches more than one collection runs under it.
type SessionRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoSessionRunner runs the function inside a MongoDB transaction.
type MongoSessionRunner struct {
	Client *mongo.Client
}

// WithTransaction starts a session and commits all writes together or not at all.
func (r *MongoSessionRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// NopSessionRunner calls the function directly, without a transaction.
// Used in tests and against deployments without replica sets.
type NopSessionRunner struct{}

// WithTransaction calls fn with the given context.
func (NopSessionRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
