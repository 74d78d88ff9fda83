package entity

import "go.mongodb.org/mongo-driver/v2/bson"

// Sample is one recorded sample of a person. ImageID and AudioID point into
// the GridFS bucket and are stored as null when the folder had no such file.
type Sample struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	PersonID    string         `bson:"person_id" json:"person_id"`
	SampleID    string         `bson:"sample_id" json:"sample_id"`
	ImageID     *bson.ObjectID `bson:"image_id" json:"image_id"`
	AudioID     *bson.ObjectID `bson:"audio_id" json:"audio_id"`
	Transcript  string         `bson:"transcript" json:"transcript"`
	Description string         `bson:"description" json:"description"`
}
