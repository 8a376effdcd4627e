// Package awsauth builds request-scoped AWS SDK configurations from
// credentials supplied in the request payload. No client or configuration is
// cached: each request gets its own scoped config and the credentials are
// discarded with it.
package awsauth

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/de-tools/billing-atlas/pkg/models/domain"
)

func LoadConfig(ctx context.Context, creds domain.Credentials) (awssdk.Config, error) {
	creds = creds.WithDefaults()

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(creds.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return awsCfg, nil
}
