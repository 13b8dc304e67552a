// File: internal/wordlist/s3.go

package wordlist

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// newS3Client builds an S3 client from the standard AWS environment. When
// AWS_ENDPOINT is set the client targets that endpoint with path-style
// addressing, which covers MinIO and R2 deployments hosting private lists.
func newS3Client(ctx context.Context) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if region := os.Getenv("AWS_REGION"); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, os.Getenv("AWS_SESSION_TOKEN")),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("wordlist: loading aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := os.Getenv("AWS_ENDPOINT"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// fetchS3 downloads s3://bucket/key into destPath using the same capped,
// atomic write as HTTP fetches.
func fetchS3(ctx context.Context, bucket, key, destPath string) error {
	client, err := newS3Client(ctx)
	if err != nil {
		return err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("wordlist: fetching s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > DefaultMaxDownloadBytes {
		return fmt.Errorf("%w: s3://%s/%s advertises %d bytes", ErrSizeLimit, bucket, key, *out.ContentLength)
	}

	if _, err := writeAtomic(destPath, out.Body, DefaultMaxDownloadBytes); err != nil {
		return fmt.Errorf("wordlist: writing %q: %w", destPath, err)
	}
	return nil
}
