package repository

import (
	"context"

	"github.com/joeyave/dream-integration/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PersonRepository struct {
	collection *mongo.Collection
}

func NewPersonRepository(mongoClient *mongo.Client, dbName, collectionName string) *PersonRepository {
	return &PersonRepository{
		collection: mongoClient.Database(dbName).Collection(collectionName),
	}
}

func (r *PersonRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "person_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// UpsertOne creates the person or refreshes it in place, matching on person_id.
func (r *PersonRepository) UpsertOne(ctx context.Context, person entity.Person) (*entity.Person, error) {
	if person.PersonID == "" {
		return nil, ErrInvalidKey
	}

	filter := bson.M{"person_id": person.PersonID}

	person.ID = bson.NilObjectID
	update := bson.M{
		"$set": person,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)

	result := r.collection.FindOneAndUpdate(ctx, filter, update, opts)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var newPerson *entity.Person
	err := result.Decode(&newPerson)
	return newPerson, err
}
