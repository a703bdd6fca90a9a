package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Abraxas-365/hrms/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3FileSystem stores files as objects under prefix in one bucket.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3FileSystem) key(name string) (string, error) {
	cleaned, err := fsx.CleanName(name)
	if err != nil {
		return "", err
	}
	return fsx.Join(s.prefix, cleaned), nil
}

func (s *S3FileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	rc, err := s.ReadFileStream(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *S3FileSystem) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fsx.ErrFileNotFound(name)
		}
		return nil, fmt.Errorf("fsxs3: get %s: %w", key, err)
	}
	return out.Body, nil
}

func (s *S3FileSystem) Exists(ctx context.Context, name string) (bool, error) {
	key, err := s.key(name)
	if err != nil {
		return false, err
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("fsxs3: head %s: %w", key, err)
	}
	return true, nil
}

func (s *S3FileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	return s.WriteFileStream(ctx, name, bytes.NewReader(data))
}

func (s *S3FileSystem) WriteFileStream(ctx context.Context, name string, r io.Reader) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("fsxs3: put %s: %w", key, err)
	}
	return nil
}

func (s *S3FileSystem) DeleteFile(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("fsxs3: delete %s: %w", key, err)
	}
	return nil
}
