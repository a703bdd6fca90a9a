package jobinfra

import (
	"context"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoJobRepository struct {
	col *mongo.Collection
}

func NewMongoJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{col: db.Collection("jobs")}
}

func (r *MongoJobRepository) FindByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var j job.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find job by id", errx.TypeInternal)
	}
	return &j, nil
}

func (r *MongoJobRepository) List(ctx context.Context, status job.Status) ([]*job.Job, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}
	jobs := []*job.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, errx.Wrap(err, "failed to decode jobs", errx.TypeInternal)
	}
	return jobs, nil
}

func (r *MongoJobRepository) Create(ctx context.Context, j *job.Job) error {
	if _, err := r.col.InsertOne(ctx, j); err != nil {
		return errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}
	return nil
}

func (r *MongoJobRepository) Update(ctx context.Context, j *job.Job) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": j.ID}, j)
	if err != nil {
		return errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}
	if res.MatchedCount == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", j.ID.String())
	}
	return nil
}

func (r *MongoJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}
	if res.DeletedCount == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}
