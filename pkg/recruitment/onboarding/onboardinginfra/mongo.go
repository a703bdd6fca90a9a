package onboardinginfra

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoOnboardingRepository stores onboardings in "onboardings" with a unique
// index on application_id. List edits use $addToSet and $pull.
type MongoOnboardingRepository struct {
	col *mongo.Collection
}

func NewMongoOnboardingRepository(db *mongo.Database) *MongoOnboardingRepository {
	return &MongoOnboardingRepository{col: db.Collection("onboardings")}
}

func (r *MongoOnboardingRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) (*onboarding.Onboarding, error) {
	var o onboarding.Onboarding
	if err := r.col.FindOne(ctx, bson.M{"application_id": applicationID}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, onboarding.ErrOnboardingNotFound().WithDetail("application_id", applicationID.String())
		}
		return nil, errx.Wrap(err, "failed to find onboarding", errx.TypeInternal)
	}
	return &o, nil
}

func (r *MongoOnboardingRepository) List(ctx context.Context) ([]*onboarding.Onboarding, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list onboardings", errx.TypeInternal)
	}
	records := []*onboarding.Onboarding{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errx.Wrap(err, "failed to decode onboardings", errx.TypeInternal)
	}
	return records, nil
}

func (r *MongoOnboardingRepository) Create(ctx context.Context, o *onboarding.Onboarding) error {
	if _, err := r.col.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return onboarding.ErrAlreadyExists().WithDetail("application_id", o.ApplicationID.String())
		}
		return errx.Wrap(err, "failed to create onboarding", errx.TypeInternal)
	}
	return nil
}

func (r *MongoOnboardingRepository) AppendSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"application_id": applicationID},
		bson.M{
			"$addToSet": bson.M{"interview_session_ids": id},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return errx.Wrap(err, "failed to append session to onboarding", errx.TypeInternal)
	}
	if res.MatchedCount == 0 {
		return onboarding.ErrOnboardingNotFound().WithDetail("application_id", applicationID.String())
	}
	return nil
}

func (r *MongoOnboardingRepository) RemoveSession(ctx context.Context, applicationID kernel.ApplicationID, id kernel.SessionID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"application_id": applicationID},
		bson.M{
			"$pull": bson.M{"interview_session_ids": id},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return errx.Wrap(err, "failed to remove session from onboarding", errx.TypeInternal)
	}
	if res.MatchedCount == 0 {
		return onboarding.ErrOnboardingNotFound().WithDetail("application_id", applicationID.String())
	}
	return nil
}
