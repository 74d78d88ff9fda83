package entity

type BlobKind string

const (
	ImageBlob BlobKind = "image"
	AudioBlob BlobKind = "audio"
)

// BlobMetadata is attached to every file stored in GridFS.
type BlobMetadata struct {
	PersonID    string   `bson:"person_id"`
	SampleID    string   `bson:"sample_id"`
	Kind        BlobKind `bson:"kind"`
	ContentType string   `bson:"contentType,omitempty"`
}
