package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
)

type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectStore reads analytics documents from and writes uploads to S3.
type ObjectStore struct {
	client s3API
}

func NewObjectStore(cfg awssdk.Config) *ObjectStore {
	return &ObjectStore{client: s3.NewFromConfig(cfg)}
}

func (s *ObjectStore) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

func (s *ObjectStore) Upload(ctx context.Context, obj cloud.Object) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(obj.Bucket),
		Key:         awssdk.String(obj.Key),
		Body:        bytes.NewReader(obj.Body),
		ContentType: awssdk.String(obj.ContentType),
		Metadata:    obj.Metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put s3://%s/%s: %w", obj.Bucket, obj.Key, err)
	}
	return fmt.Sprintf("s3://%s/%s", obj.Bucket, obj.Key), nil
}
