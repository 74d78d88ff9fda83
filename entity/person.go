package entity

import "go.mongodb.org/mongo-driver/v2/bson"

type Person struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PersonID string        `bson:"person_id" json:"person_id"`
}
