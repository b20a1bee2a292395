package output

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-sphere-tracer/pkg/config"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// Publisher uploads encoded renders somewhere they can be served from
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte) (string, error)
}

// S3Publisher uploads PNGs to an S3-compatible bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher from static credentials.
// Path-style addressing keeps it working against MinIO and other S3 clones.
func NewS3Publisher(cfg config.S3Config) (*S3Publisher, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix), nil
}

// NewS3PublisherWithClient creates a publisher around an existing client
func NewS3PublisherWithClient(client s3iface.S3API, bucket, prefix string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix}
}

// Publish uploads data as a PNG under the configured prefix and returns its key
func (p *S3Publisher) Publish(ctx context.Context, name string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := path.Join(p.prefix, name)
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to S3 (%d bytes)", key, size)
	return key, nil
}
