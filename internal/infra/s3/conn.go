package infra_s3

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/humanbelnik/jukebox/internal/config"
)

const mockRegion = "mock-region"

// MustEstablishConn builds an S3 client for the configured client type.
// The real client takes region and credentials from the AWS environment.
func MustEstablishConn(cfg config.Archive) *s3.Client {
	switch cfg.ClientType {
	case config.ArchiveMock:
		log.Printf("[S3] using mock client with endpoint %s", cfg.Endpoint)
		return NewMockClient(cfg.Endpoint)
	default:
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			log.Fatalf("[S3] failed to load AWS config: %v", err)
		}
		log.Printf("[S3] using real client in region %s", awsCfg.Region)
		return s3.NewFromConfig(awsCfg)
	}
}

// NewMockClient talks path-style to an S3-compatible endpoint with static
// credentials.
func NewMockClient(endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:                     mockRegion,
		Credentials:                credentials.NewStaticCredentialsProvider("mock", "mock", ""),
		BaseEndpoint:               aws.String(endpoint),
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
}
