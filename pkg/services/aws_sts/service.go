// Package aws_sts wraps the AWS STS identity-lookup operation behind the two
// shapes the API needs: a never-failing credential probe and an account-info
// lookup with standard error mapping.
package aws_sts

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/de-tools/billing-atlas/pkg/models/domain"
	"github.com/de-tools/billing-atlas/pkg/services/awsauth"
)

// invalidCredentialsMessage is the stable, non-vendor-specific text returned
// for the known credential-related error codes. The vendor's raw message for
// this class must not leak to the caller.
const invalidCredentialsMessage = "Invalid AWS credentials. Please check your Access Key ID and Secret Access Key."

var invalidCredentialCodes = map[string]struct{}{
	"InvalidUserID.NotFound": {},
	"SignatureDoesNotMatch":  {},
	"InvalidAccessKeyId":     {},
}

type Service interface {
	// ValidateCredentials probes the identity endpoint. Every failure path
	// collapses into a Valid:false result; this operation never errors.
	ValidateCredentials(ctx context.Context, creds domain.Credentials) domain.CredentialValidation
	GetAccountInfo(ctx context.Context, creds domain.Credentials) (*domain.AccountInfo, error)
}

type API interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

type ClientFactory func(ctx context.Context, creds domain.Credentials) (API, error)

func DefaultClientFactory(ctx context.Context, creds domain.Credentials) (API, error) {
	cfg, err := awsauth.LoadConfig(ctx, creds)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to construct sts client", Err: err}
	}
	return sts.NewFromConfig(cfg), nil
}

type service struct {
	clients ClientFactory
}

func NewService(clients ClientFactory) Service {
	if clients == nil {
		clients = DefaultClientFactory
	}
	return &service{clients: clients}
}

func (s *service) ValidateCredentials(ctx context.Context, creds domain.Credentials) domain.CredentialValidation {
	client, err := s.clients(ctx, creds)
	if err != nil {
		return domain.CredentialValidation{Valid: false, Error: err.Error()}
	}

	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			if _, known := invalidCredentialCodes[apiErr.ErrorCode()]; known {
				return domain.CredentialValidation{Valid: false, Error: invalidCredentialsMessage}
			}
			return domain.CredentialValidation{Valid: false, Error: apiErr.ErrorMessage()}
		}
		return domain.CredentialValidation{Valid: false, Error: err.Error()}
	}

	return domain.CredentialValidation{
		Valid:     true,
		AccountID: aws.ToString(output.Account),
	}
}

func (s *service) GetAccountInfo(ctx context.Context, creds domain.Credentials) (*domain.AccountInfo, error) {
	client, err := s.clients(ctx, creds)
	if err != nil {
		return nil, err
	}

	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return nil, &domain.VendorRequestError{
				Code:    apiErr.ErrorCode(),
				Message: apiErr.ErrorMessage(),
			}
		}
		return nil, &domain.InternalError{Message: "failed to get caller identity", Err: err}
	}

	return &domain.AccountInfo{
		AccountID: aws.ToString(output.Account),
		UserID:    aws.ToString(output.UserId),
		ARN:       aws.ToString(output.Arn),
	}, nil
}
