package aws

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// DefaultRegion is used when neither the environment nor the shared config
// names a region.
const DefaultRegion = "ap-south-1"

// Endpoint returns the LocalStack-style override endpoint, if any. The
// S3-specific variable wins over the generic one.
func Endpoint() string {
	if endpoint := os.Getenv("AWS_S3_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return os.Getenv("AWS_ENDPOINT")
}

// LoadAWSConfig loads the default credential chain. With an override
// endpoint set every SDK client built from the config targets it.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if endpoint := Endpoint(); endpoint != "" {
		cfg.BaseEndpoint = sdkaws.String(endpoint)
	}
	return cfg, nil
}
