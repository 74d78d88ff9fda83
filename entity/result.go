package entity

import "go.mongodb.org/mongo-driver/v2/bson"

// Result holds analysis scores of a sample as they were read from the
// score files, keys in file order.
type Result struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PersonID    string        `bson:"person_id" json:"person_id"`
	SampleID    string        `bson:"sample_id" json:"sample_id"`
	TextScores  bson.D        `bson:"text_scores" json:"text_scores"`
	ImageScores bson.D        `bson:"image_scores" json:"image_scores"`
}

func (r *Result) HasScores() bool {
	return len(r.TextScores) > 0 || len(r.ImageScores) > 0
}
