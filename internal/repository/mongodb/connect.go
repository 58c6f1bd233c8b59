// Package mongodb stores events and bookings in the "events" and "bookings"
// MongoDB collections.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"devevent/internal/connection"
)

const (
	eventsCollection   = "events"
	bookingsCollection = "bookings"
)

// Database yields the database handle repositories operate on.
type Database interface {
	Acquire(ctx context.Context) (*mongo.Database, error)
}

// Connect returns a connection factory that dials uri and pings the primary.
// Commands are not buffered: a dead server fails the first call instead of queueing.
func Connect(uri, database string) connection.Factory[*mongo.Database] {
	return func(ctx context.Context) (*mongo.Database, error) {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		return client.Database(database), nil
	}
}

// Disconnect closes the client behind db.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}

func collection(ctx context.Context, db Database, name string) (*mongo.Collection, error) {
	handle, err := db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire database: %w", err)
	}
	return handle.Collection(name), nil
}
