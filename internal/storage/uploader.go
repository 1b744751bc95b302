package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// Uploader stores an uploaded image and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
}

// FirebaseUploader implements Uploader on a Firebase Storage bucket
type FirebaseUploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewFirebaseUploader creates a new FirebaseUploader
func NewFirebaseUploader(bucket *gcs.BucketHandle, bucketName string) *FirebaseUploader {
	return &FirebaseUploader{bucket: bucket, bucketName: bucketName}
}

// Upload writes the object to the bucket and returns its media download URL
func (u *FirebaseUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	w := u.bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", u.bucketName, objectName), nil
}
