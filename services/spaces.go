// Package services holds the application workflows between the HTTP
// handlers and the repositories and adapters.
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/gottatrackem/backend/config"
)

// SpacesService archives scanned card images in a DigitalOcean Spaces
// bucket so identification can be rerun later against better matchers.
type SpacesService struct {
	client   *s3.Client
	bucket   string
	region   string
	scanRoot string
}

func NewSpacesService(cfg config.SpacesConfig) (*SpacesService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load spaces config: %w", err)
	}

	root := strings.Trim(cfg.ScanRoot, "/")
	if root == "" {
		root = "scans"
	}

	return &SpacesService{
		client:   s3.NewFromConfig(awsCfg),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		scanRoot: root,
	}, nil
}

// ArchiveScan stores one scanned image and returns its object key.
func (s *SpacesService) ArchiveScan(ctx context.Context, image []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("%s/%s", s.scanRoot, uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(image),
		ContentType: &contentType,
		ACL:         "private",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive scan: %w", err)
	}
	return key, nil
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}
