package repository

import (
	"context"

	"github.com/joeyave/dream-integration/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ResultRepository struct {
	collection *mongo.Collection
}

func NewResultRepository(mongoClient *mongo.Client, dbName, collectionName string) *ResultRepository {
	return &ResultRepository{
		collection: mongoClient.Database(dbName).Collection(collectionName),
	}
}

func (r *ResultRepository) EnsureIndexes(ctx context.Context) error {
	return ensureSampleKeyIndex(ctx, r.collection)
}

// UpsertOne replaces both score documents of the sample. Scores from an
// earlier write are not merged.
func (r *ResultRepository) UpsertOne(ctx context.Context, res entity.Result) (*entity.Result, error) {
	if res.PersonID == "" || res.SampleID == "" {
		return nil, ErrInvalidKey
	}

	if res.TextScores == nil {
		res.TextScores = bson.D{}
	}
	if res.ImageScores == nil {
		res.ImageScores = bson.D{}
	}

	filter := bson.M{
		"person_id": res.PersonID,
		"sample_id": res.SampleID,
	}

	update := bson.M{
		"$set": bson.M{
			"text_scores":  res.TextScores,
			"image_scores": res.ImageScores,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)

	result := r.collection.FindOneAndUpdate(ctx, filter, update, opts)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var newResult *entity.Result
	err := result.Decode(&newResult)
	return newResult, err
}
