package letterinfra

import (
	"context"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoLetterRepository struct {
	col *mongo.Collection
}

func NewMongoLetterRepository(db *mongo.Database) *MongoLetterRepository {
	return &MongoLetterRepository{col: db.Collection("letters")}
}

func (r *MongoLetterRepository) FindByID(ctx context.Context, id kernel.LetterID) (*letter.Letter, error) {
	var l letter.Letter
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, letter.ErrLetterNotFound().WithDetail("letter_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find letter", errx.TypeInternal)
	}
	return &l, nil
}

func (r *MongoLetterRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*letter.Letter, error) {
	cursor, err := r.col.Find(ctx, bson.M{"application_id": applicationID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list letters", errx.TypeInternal)
	}
	letters := []*letter.Letter{}
	if err := cursor.All(ctx, &letters); err != nil {
		return nil, errx.Wrap(err, "failed to decode letters", errx.TypeInternal)
	}
	return letters, nil
}

func (r *MongoLetterRepository) Create(ctx context.Context, l *letter.Letter) error {
	if _, err := r.col.InsertOne(ctx, l); err != nil {
		return errx.Wrap(err, "failed to create letter", errx.TypeInternal)
	}
	return nil
}

func (r *MongoLetterRepository) Update(ctx context.Context, l *letter.Letter) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return errx.Wrap(err, "failed to update letter", errx.TypeInternal)
	}
	if res.MatchedCount == 0 {
		return letter.ErrLetterNotFound().WithDetail("letter_id", l.ID.String())
	}
	return nil
}
