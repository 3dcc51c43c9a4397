// pkg/render/s3.go

package render

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// S3Mirror copies artifacts to an S3 bucket under an optional key prefix.
type S3Mirror struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
	prefix   string
}

// NewS3Mirror builds a mirror from the default AWS credential chain.
func NewS3Mirror(region, bucket, prefix string) (*S3Mirror, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, &RenderError{Op: "s3 session", Err: err}
	}
	return NewS3MirrorWithUploader(s3manager.NewUploader(sess), bucket, prefix), nil
}

// NewS3MirrorWithUploader wraps an existing uploader.
func NewS3MirrorWithUploader(u s3manageriface.UploaderAPI, bucket, prefix string) *S3Mirror {
	return &S3Mirror{uploader: u, bucket: bucket, prefix: prefix}
}

// Upload stores body at {prefix}/{key}.
func (m *S3Mirror) Upload(ctx context.Context, key string, body []byte) error {
	objectKey := path.Join(m.prefix, key)
	_, err := m.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return &RenderError{Op: "s3 upload", Path: "s3://" + m.bucket + "/" + objectKey, Err: err}
	}
	return nil
}
