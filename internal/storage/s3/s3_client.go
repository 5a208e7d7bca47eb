// Package s3 is the archive store for confirmed documents. Uploads retry
// with exponential backoff because the archive call sits at the very end of
// the confirmation flow, after the database write already happened.
package s3

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cargodocs/internal/config"
	"cargodocs/internal/port"
)

type s3Client struct {
	client      *s3.Client
	uploader    *manager.Uploader
	maxAttempts uint
}

// NewS3Client creates an S3-backed ObjectStorage implementation.
func NewS3Client(cfg *config.S3Config) (port.ObjectStorage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	maxAttempts := uint(cfg.MaxAttempts)
	if maxAttempts == 0 {
		maxAttempts = 5
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &s3Client{
		client:      client,
		uploader:    manager.NewUploader(client),
		maxAttempts: maxAttempts,
	}, nil
}

func (c *s3Client) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	var result *manager.UploadOutput
	err := retry.Do(
		func() error {
			// Rewind between attempts when the body allows it.
			if seeker, ok := input.Body.(io.Seeker); ok {
				if _, err := seeker.Seek(0, io.SeekStart); err != nil {
					return retry.Unrecoverable(err)
				}
			}
			var err error
			result, err = c.uploader.Upload(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(input.Bucket),
				Key:         aws.String(input.Key),
				Body:        input.Body,
				ContentType: aws.String(input.ContentType),
			})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.maxAttempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("s3: upload %s attempt %d failed: %v", input.Key, n+1, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	etag := ""
	if result.ETag != nil {
		etag = *result.ETag
	}

	return &port.UploadOutput{
		Location: result.Location,
		ETag:     etag,
	}, nil
}

func (c *s3Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}
