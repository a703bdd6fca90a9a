package userinfra

import (
	"context"
	"errors"
	"regexp"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoUserRepository stores users in the "users" collection.
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	var u user.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find user by id", errx.TypeInternal)
	}
	return &u, nil
}

func emailFilter(email string) bson.M {
	return bson.M{"email": bson.M{"$regex": "^" + regexp.QuoteMeta(email) + "$", "$options": "i"}}
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := r.col.FindOne(ctx, emailFilter(email)).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound().WithDetail("email", email)
		}
		return nil, errx.Wrap(err, "failed to find user by email", errx.TypeInternal)
	}
	return &u, nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]*user.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}
	var users []*user.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errx.Wrap(err, "failed to decode users", errx.TypeInternal)
	}
	return users, nil
}

func (r *MongoUserRepository) Save(ctx context.Context, u user.User) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.ErrUserAlreadyExists().WithDetail("email", u.Email)
		}
		return errx.Wrap(err, "failed to save user", errx.TypeInternal)
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id kernel.UserID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errx.Wrap(err, "failed to delete user", errx.TypeInternal)
	}
	if res.DeletedCount == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return nil
}

func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, emailFilter(email), options.Count().SetLimit(1))
	if err != nil {
		return false, errx.Wrap(err, "failed to check user existence by email", errx.TypeInternal)
	}
	return n > 0, nil
}

func (r *MongoUserRepository) Count(ctx context.Context) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errx.Wrap(err, "failed to count users", errx.TypeInternal)
	}
	return int(n), nil
}
