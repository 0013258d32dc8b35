package repositories

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chem1sto/test-moscow-metro/internal/config"
)

// R2Photos keeps photos in a Cloudflare R2 bucket through its S3 API.
type R2Photos struct {
	client        *s3.Client
	bucket        string
	endpoint      string
	publicBaseURL string
}

// NewR2Photos initializes the R2 client using static credentials and custom endpoint.
func NewR2Photos(cfg config.R2Config) *R2Photos {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	log.Println("Successfully initialized R2 client")

	return &R2Photos{
		client:        client,
		bucket:        cfg.BucketName,
		endpoint:      endpoint,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

// Save uploads the photo, replacing an object with the same key.
func (p *R2Photos) Save(ctx context.Context, upload Upload) (string, error) {
	if err := upload.validName(); err != nil {
		return "", err
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(upload.Name),
		Body:        upload.Body,
		ContentType: aws.String(upload.ContentType),
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}
	if _, err := p.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return p.URL(upload.Name), nil
}

// Delete removes the object; S3 treats a missing key as success.
func (p *R2Photos) Delete(ctx context.Context, name string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(name),
	})
	return err
}

func (p *R2Photos) URL(name string) string {
	if p.publicBaseURL != "" {
		return p.publicBaseURL + "/" + name
	}
	return p.endpoint + "/" + p.bucket + "/" + name
}
