package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared with the web client's document store.
const (
	resultsCollection = "surveyResults"
	reportsCollection = "reports"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

// MongoResultRepo implements ResultRepo using MongoDB.
type MongoResultRepo struct {
	coll *mongo.Collection
}

func NewMongoResultRepo(db *mongo.Database) *MongoResultRepo {
	return &MongoResultRepo{coll: db.Collection(resultsCollection)}
}

func (r *MongoResultRepo) Create(ctx context.Context, rec *domain.ResultRecord) error {
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("inserting survey result: %w", err)
	}
	return nil
}

func (r *MongoResultRepo) CreateAll(ctx context.Context, recs []*domain.ResultRecord) error {
	if len(recs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(recs))
	for i, rec := range recs {
		docs[i] = rec
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("inserting survey results: %w", err)
	}
	return nil
}

func (r *MongoResultRepo) GetByID(ctx context.Context, id string) (*domain.ResultRecord, error) {
	var rec domain.ResultRecord
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("survey result: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("finding survey result: %w", err)
	}
	return &rec, nil
}

func (r *MongoResultRepo) List(ctx context.Context) ([]*domain.ResultRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("listing survey results: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.ResultRecord
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding survey results: %w", err)
	}
	return out, nil
}

// MongoReportRepo implements ReportRepo using MongoDB.
type MongoReportRepo struct {
	coll *mongo.Collection
}

func NewMongoReportRepo(db *mongo.Database) *MongoReportRepo {
	return &MongoReportRepo{coll: db.Collection(reportsCollection)}
}

func (r *MongoReportRepo) Create(ctx context.Context, rep *domain.ReportRecord) error {
	if _, err := r.coll.InsertOne(ctx, rep); err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

func (r *MongoReportRepo) List(ctx context.Context) ([]*domain.ReportRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.ReportRecord
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decoding reports: %w", err)
	}
	return out, nil
}
