package dbx

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/hrms/pkg/logx"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// mongoIndexes are the indexes the repositories rely on. Unique indexes back
// the duplicate-key checks in Create.
var mongoIndexes = map[string][]mongo.IndexModel{
	"users": {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("users_email_uq")},
	},
	"applications": {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("applications_email_uq")},
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("applications_job_status")},
	},
	"onboardings": {
		{Keys: bson.D{{Key: "application_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("onboardings_application_uq")},
	},
	"interview_sessions": {
		{Keys: bson.D{{Key: "interviewer_id", Value: 1}, {Key: "start_time", Value: 1}}, Options: options.Index().SetName("sessions_interviewer_start")},
		{Keys: bson.D{{Key: "application_id", Value: 1}, {Key: "start_time", Value: 1}}, Options: options.Index().SetName("sessions_application_start")},
		{Keys: bson.D{{Key: "round_id", Value: 1}}, Options: options.Index().SetName("sessions_round")},
	},
	"interview_rounds": {
		{Keys: bson.D{{Key: "interviewer_id", Value: 1}}, Options: options.Index().SetName("rounds_interviewer")},
	},
	"letters": {
		{Keys: bson.D{{Key: "application_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("letters_application")},
	},
}

// EnsureMongoIndexes creates missing indexes. Existing ones are left alone.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range mongoIndexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	logx.Info("✅ Mongo indexes ensured")
	return nil
}
