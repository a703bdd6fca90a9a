package applicationinfra

import (
	"context"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoApplicationRepository stores applications in "applications". The
// unique email index is created at bootstrap.
type MongoApplicationRepository struct {
	col *mongo.Collection
}

func NewMongoApplicationRepository(db *mongo.Database) *MongoApplicationRepository {
	return &MongoApplicationRepository{col: db.Collection("applications")}
}

func (r *MongoApplicationRepository) FindByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var a application.Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find application by id", errx.TypeInternal)
	}
	return &a, nil
}

func (r *MongoApplicationRepository) List(ctx context.Context, filter application.ListFilter) ([]*application.Application, error) {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.JobID != "" {
		q["job_id"] = filter.JobID
	}
	cursor, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}}))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}
	apps := []*application.Application{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, errx.Wrap(err, "failed to decode applications", errx.TypeInternal)
	}
	return apps, nil
}

func (r *MongoApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return application.ErrApplicationAlreadyExists().WithDetail("email", a.Email)
		}
		return errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}
	return nil
}

func (r *MongoApplicationRepository) Update(ctx context.Context, a *application.Application) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}
	if res.MatchedCount == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", a.ID.String())
	}
	return nil
}
