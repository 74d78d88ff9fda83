package repository

import (
	"context"

	"github.com/joeyave/dream-integration/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type SampleRepository struct {
	collection *mongo.Collection
}

func NewSampleRepository(mongoClient *mongo.Client, dbName, collectionName string) *SampleRepository {
	return &SampleRepository{
		collection: mongoClient.Database(dbName).Collection(collectionName),
	}
}

func (r *SampleRepository) EnsureIndexes(ctx context.Context) error {
	return ensureSampleKeyIndex(ctx, r.collection)
}

// UpsertOne overwrites every field of the sample identified by
// (person_id, sample_id), inserting it when missing.
func (r *SampleRepository) UpsertOne(ctx context.Context, sample entity.Sample) (*entity.Sample, error) {
	if sample.PersonID == "" || sample.SampleID == "" {
		return nil, ErrInvalidKey
	}

	filter := bson.M{
		"person_id": sample.PersonID,
		"sample_id": sample.SampleID,
	}

	sample.ID = bson.NilObjectID
	update := bson.M{
		"$set": sample,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)

	result := r.collection.FindOneAndUpdate(ctx, filter, update, opts)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var newSample *entity.Sample
	err := result.Decode(&newSample)
	return newSample, err
}

func ensureSampleKeyIndex(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "person_id", Value: 1},
			{Key: "sample_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
