package dbx

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hrms/pkg/logx"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoTxRunner runs fn inside session.WithTransaction. Transactions need a
// replica set; with transactions disabled fn runs directly and the onboarding
// reconciler repairs any partial write.
type MongoTxRunner struct {
	client  *mongo.Client
	enabled bool
}

func NewMongoTxRunner(client *mongo.Client, enabled bool) *MongoTxRunner {
	if !enabled {
		logx.Warn("⚠️  Mongo transactions disabled, relying on the onboarding reconciler")
	}
	return &MongoTxRunner{client: client, enabled: enabled}
}

func (r *MongoTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (any, error) {
		return nil, fn(sc)
	})
	return err
}

// ConnectMongo opens a client and checks the primary is reachable.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(dbName), nil
}
