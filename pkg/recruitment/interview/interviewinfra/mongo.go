package interviewinfra

import (
	"context"
	"errors"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var byStartTime = options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

// MongoSessionRepository stores sessions in "interview_sessions". Writes join
// the transaction carried by ctx when there is one.
type MongoSessionRepository struct {
	col *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{col: db.Collection("interview_sessions")}
}

func (r *MongoSessionRepository) FindByID(ctx context.Context, id kernel.SessionID) (*interview.Session, error) {
	var s interview.Session
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interview.ErrSessionNotFound().WithDetail("session_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find session by id", errx.TypeInternal)
	}
	return &s, nil
}

func (r *MongoSessionRepository) FindConflict(ctx context.Context, interviewerID kernel.UserID, applicationID kernel.ApplicationID, tr interview.TimeRange, exclude kernel.SessionID) (*interview.Session, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"interviewer_id": interviewerID},
			bson.M{"application_id": applicationID},
		},
		"start_time": bson.M{"$lt": tr.End},
		"end_time":   bson.M{"$gt": tr.Start},
		"_id":        bson.M{"$ne": exclude},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "start_time", Value: 1}})

	var s interview.Session
	if err := r.col.FindOne(ctx, filter, opts).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to check session conflicts", errx.TypeInternal)
	}
	return &s, nil
}

func (r *MongoSessionRepository) FindByApplication(ctx context.Context, applicationID kernel.ApplicationID) ([]*interview.Session, error) {
	return r.find(ctx, bson.M{"application_id": applicationID})
}

func (r *MongoSessionRepository) FindByInterviewer(ctx context.Context, interviewerID kernel.UserID, w interview.Window) ([]*interview.Session, error) {
	filter := bson.M{"interviewer_id": interviewerID}
	if w.To != nil {
		filter["start_time"] = bson.M{"$lte": *w.To}
	}
	if w.From != nil {
		filter["end_time"] = bson.M{"$gt": *w.From}
	}
	return r.find(ctx, filter)
}

func (r *MongoSessionRepository) ListAll(ctx context.Context) ([]*interview.Session, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoSessionRepository) CountByRound(ctx context.Context, roundID kernel.RoundID) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"round_id": roundID})
	if err != nil {
		return 0, errx.Wrap(err, "failed to count sessions by round", errx.TypeInternal)
	}
	return int(n), nil
}

func (r *MongoSessionRepository) Create(ctx context.Context, s *interview.Session) error {
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return errx.Wrap(err, "failed to create session", errx.TypeInternal).
			WithDetail("session_id", s.ID.String())
	}
	return nil
}

func (r *MongoSessionRepository) Update(ctx context.Context, s *interview.Session) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return errx.Wrap(err, "failed to update session", errx.TypeInternal).
			WithDetail("session_id", s.ID.String())
	}
	if res.MatchedCount == 0 {
		return interview.ErrSessionNotFound().WithDetail("session_id", s.ID.String())
	}
	return nil
}

func (r *MongoSessionRepository) Delete(ctx context.Context, id kernel.SessionID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errx.Wrap(err, "failed to delete session", errx.TypeInternal).
			WithDetail("session_id", id.String())
	}
	if res.DeletedCount == 0 {
		return interview.ErrSessionNotFound().WithDetail("session_id", id.String())
	}
	return nil
}

func (r *MongoSessionRepository) find(ctx context.Context, filter bson.M) ([]*interview.Session, error) {
	cursor, err := r.col.Find(ctx, filter, byStartTime)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list sessions", errx.TypeInternal)
	}
	sessions := []*interview.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, errx.Wrap(err, "failed to decode sessions", errx.TypeInternal)
	}
	return sessions, nil
}

// ============================================================================
// Rounds
// ============================================================================

// MongoRoundRepository stores rounds in "interview_rounds".
type MongoRoundRepository struct {
	col *mongo.Collection
}

func NewMongoRoundRepository(db *mongo.Database) *MongoRoundRepository {
	return &MongoRoundRepository{col: db.Collection("interview_rounds")}
}

func (r *MongoRoundRepository) FindByID(ctx context.Context, id kernel.RoundID) (*interview.Round, error) {
	var round interview.Round
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&round); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interview.ErrRoundNotFound().WithDetail("round_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find round by id", errx.TypeInternal)
	}
	return &round, nil
}

func (r *MongoRoundRepository) FindByInterviewer(ctx context.Context, interviewerID kernel.UserID) ([]*interview.Round, error) {
	return r.find(ctx, bson.M{"interviewer_id": interviewerID})
}

func (r *MongoRoundRepository) List(ctx context.Context) ([]*interview.Round, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRoundRepository) Create(ctx context.Context, round *interview.Round) error {
	if _, err := r.col.InsertOne(ctx, round); err != nil {
		return errx.Wrap(err, "failed to create round", errx.TypeInternal).
			WithDetail("round_id", round.ID.String())
	}
	return nil
}

func (r *MongoRoundRepository) Update(ctx context.Context, round *interview.Round) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": round.ID}, round)
	if err != nil {
		return errx.Wrap(err, "failed to update round", errx.TypeInternal)
	}
	if res.MatchedCount == 0 {
		return interview.ErrRoundNotFound().WithDetail("round_id", round.ID.String())
	}
	return nil
}

func (r *MongoRoundRepository) Delete(ctx context.Context, id kernel.RoundID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errx.Wrap(err, "failed to delete round", errx.TypeInternal)
	}
	if res.DeletedCount == 0 {
		return interview.ErrRoundNotFound().WithDetail("round_id", id.String())
	}
	return nil
}

func (r *MongoRoundRepository) find(ctx context.Context, filter bson.M) ([]*interview.Round, error) {
	opts := options.Find().SetSort(bson.D{{Key: "round_number", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list rounds", errx.TypeInternal)
	}
	rounds := []*interview.Round{}
	if err := cursor.All(ctx, &rounds); err != nil {
		return nil, errx.Wrap(err, "failed to decode rounds", errx.TypeInternal)
	}
	return rounds, nil
}
