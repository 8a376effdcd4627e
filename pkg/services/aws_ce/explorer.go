// Package aws_ce owns the request/response lifecycle for the AWS Cost
// Explorer API: it translates internal cost queries into vendor calls,
// normalizes vendor responses and maps vendor failures into the internal
// error taxonomy.
package aws_ce

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/smithy-go"
	"github.com/de-tools/billing-atlas/pkg/models/domain"
	"github.com/de-tools/billing-atlas/pkg/services/awsauth"
)

var defaultMetrics = []string{"BlendedCost"}

type Explorer interface {
	GetCostAndUsage(ctx context.Context, creds domain.Credentials, query domain.CostQuery) (*domain.CostReport, error)
	// GetDimensionValues returns the vendor-ordered value strings for a
	// dimension; duplicates are preserved.
	GetDimensionValues(ctx context.Context, creds domain.Credentials, dimension string, period domain.TimePeriod) ([]string, error)
}

// API is the slice of the vendor client the explorer depends on.
type API interface {
	GetCostAndUsage(
		ctx context.Context,
		params *costexplorer.GetCostAndUsageInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetCostAndUsageOutput, error)
	GetDimensionValues(
		ctx context.Context,
		params *costexplorer.GetDimensionValuesInput,
		optFns ...func(*costexplorer.Options),
	) (*costexplorer.GetDimensionValuesOutput, error)
}

// ClientFactory builds a vendor client scoped to one request's credentials.
type ClientFactory func(ctx context.Context, creds domain.Credentials) (API, error)

// DefaultClientFactory constructs a real Cost Explorer client from the
// supplied credentials. Nothing is cached between requests.
func DefaultClientFactory(ctx context.Context, creds domain.Credentials) (API, error) {
	cfg, err := awsauth.LoadConfig(ctx, creds)
	if err != nil {
		return nil, &domain.InternalError{Message: "failed to construct cost explorer client", Err: err}
	}
	return costexplorer.NewFromConfig(cfg), nil
}

type explorer struct {
	clients ClientFactory
}

func NewExplorer(clients ClientFactory) Explorer {
	if clients == nil {
		clients = DefaultClientFactory
	}
	return &explorer{clients: clients}
}

func (e *explorer) GetCostAndUsage(
	ctx context.Context,
	creds domain.Credentials,
	query domain.CostQuery,
) (*domain.CostReport, error) {
	client, err := e.clients(ctx, creds)
	if err != nil {
		return nil, err
	}

	metrics := query.Metrics
	if len(metrics) == 0 {
		metrics = defaultMetrics
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(query.Period.Start),
			End:   aws.String(query.Period.End),
		},
		Granularity: types.Granularity(query.Granularity),
		Metrics:     metrics,
	}

	if len(query.GroupBy) > 0 {
		input.GroupBy = make([]types.GroupDefinition, 0, len(query.GroupBy))
		for _, group := range query.GroupBy {
			input.GroupBy = append(input.GroupBy, types.GroupDefinition{
				Type: types.GroupDefinitionType(group.Type),
				Key:  aws.String(group.Key),
			})
		}
	}

	if query.Filter != nil {
		expression, err := toExpression(*query.Filter)
		if err != nil {
			return nil, err
		}
		input.Filter = expression
	}

	output, err := client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, mapVendorError("get cost and usage", err)
	}

	return normalizeReport(query, output), nil
}

func (e *explorer) GetDimensionValues(
	ctx context.Context,
	creds domain.Credentials,
	dimension string,
	period domain.TimePeriod,
) ([]string, error) {
	client, err := e.clients(ctx, creds)
	if err != nil {
		return nil, err
	}

	output, err := client.GetDimensionValues(ctx, &costexplorer.GetDimensionValuesInput{
		Dimension: types.Dimension(dimension),
		TimePeriod: &types.DateInterval{
			Start: aws.String(period.Start),
			End:   aws.String(period.End),
		},
	})
	if err != nil {
		return nil, mapVendorError("get dimension values", err)
	}

	values := make([]string, 0, len(output.DimensionValues))
	for _, item := range output.DimensionValues {
		values = append(values, aws.ToString(item.Value))
	}
	return values, nil
}

// mapVendorError classifies a vendor call failure exactly once: API errors
// the vendor reported become VendorRequestError, everything else (transport,
// client construction) becomes InternalError.
func mapVendorError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &domain.VendorRequestError{
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
		}
	}
	return &domain.InternalError{Message: "failed to " + op, Err: err}
}
