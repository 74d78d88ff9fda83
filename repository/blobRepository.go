package repository

import (
	"context"
	"io"

	"github.com/joeyave/dream-integration/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// BlobRepository writes binary payloads into a GridFS bucket. Every call
// creates a new file; identical content is not deduplicated.
type BlobRepository struct {
	bucket *mongo.GridFSBucket
}

func NewBlobRepository(mongoClient *mongo.Client, dbName, bucketName string) *BlobRepository {
	bucket := mongoClient.Database(dbName).GridFSBucket(options.GridFSBucket().SetName(bucketName))
	return &BlobRepository{
		bucket: bucket,
	}
}

func (r *BlobRepository) Store(ctx context.Context, filename string, source io.Reader, metadata entity.BlobMetadata) (bson.ObjectID, error) {
	opts := options.GridFSUpload().SetMetadata(metadata)
	return r.bucket.UploadFromStream(ctx, filename, source, opts)
}
