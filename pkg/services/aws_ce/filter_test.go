package aws_ce

import (
	"testing"

	"github.com/de-tools/billing-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name     string
		opts     func() domain.FilterOptions
		expected *domain.FilterExpression
	}{
		{
			name:     "no options yields no filter",
			opts:     domain.DefaultFilterOptions,
			expected: nil,
		},
		{
			name: "single service condition is returned bare",
			opts: func() domain.FilterOptions {
				opts := domain.DefaultFilterOptions()
				opts.Service = "Amazon EC2"
				return opts
			},
			expected: filterPtr(domain.Dimensions(domain.DimensionService, "Amazon EC2")),
		},
		{
			name: "single region condition is returned bare",
			opts: func() domain.FilterOptions {
				opts := domain.DefaultFilterOptions()
				opts.Region = "eu-west-1"
				return opts
			},
			expected: filterPtr(domain.Dimensions(domain.DimensionRegion, "eu-west-1")),
		},
		{
			name: "charge type maps to RECORD_TYPE",
			opts: func() domain.FilterOptions {
				opts := domain.DefaultFilterOptions()
				opts.ChargeType = "Usage"
				return opts
			},
			expected: filterPtr(domain.Dimensions(domain.DimensionRecordType, "Usage")),
		},
		{
			name: "conditions combine under And in emission order",
			opts: func() domain.FilterOptions {
				opts := domain.DefaultFilterOptions()
				opts.Service = "Amazon S3"
				opts.Region = "us-east-1"
				opts.ChargeType = "Usage"
				return opts
			},
			expected: filterPtr(domain.And(
				domain.Dimensions(domain.DimensionService, "Amazon S3"),
				domain.Dimensions(domain.DimensionRegion, "us-east-1"),
				domain.Dimensions(domain.DimensionRecordType, "Usage"),
			)),
		},
		{
			name: "single disabled toggle yields one Not leaf with one label",
			opts: func() domain.FilterOptions {
				opts := domain.DefaultFilterOptions()
				opts.IncludeCredit = false
				return opts
			},
			expected: filterPtr(domain.Not(domain.Dimensions(domain.DimensionRecordType, "Credit"))),
		},
		{
			name: "all toggles disabled yields one Not leaf with all labels in fixed order",
			opts: func() domain.FilterOptions {
				opts := domain.FilterOptions{}
				return opts
			},
			expected: filterPtr(domain.Not(domain.Dimensions(
				domain.DimensionRecordType,
				"Support", "Other_Subscription", "Fee", "Refund", "Credit", "RIFee",
			))),
		},
		{
			name: "service filter with excluded support",
			opts: func() domain.FilterOptions {
				opts := domain.DefaultFilterOptions()
				opts.Service = "Amazon EC2"
				opts.IncludeSupport = false
				return opts
			},
			expected: filterPtr(domain.And(
				domain.Dimensions(domain.DimensionService, "Amazon EC2"),
				domain.Not(domain.Dimensions(domain.DimensionRecordType, "Support")),
			)),
		},
		{
			name: "upfront toggle maps to the Fee record type",
			opts: func() domain.FilterOptions {
				opts := domain.DefaultFilterOptions()
				opts.IncludeUpfront = false
				return opts
			},
			expected: filterPtr(domain.Not(domain.Dimensions(domain.DimensionRecordType, "Fee"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := BuildFilter(tt.opts())
			assert.Equal(t, tt.expected, filter)
			if filter != nil {
				assert.NoError(t, filter.Validate())
			}
		})
	}
}

func TestToExpression(t *testing.T) {
	filter := domain.And(
		domain.Dimensions(domain.DimensionService, "Amazon EC2"),
		domain.Not(domain.Dimensions(domain.DimensionRecordType, "Support", "Credit")),
	)

	expression, err := toExpression(filter)
	require.NoError(t, err)

	require.Len(t, expression.And, 2)

	service := expression.And[0]
	require.NotNil(t, service.Dimensions)
	assert.Equal(t, "SERVICE", string(service.Dimensions.Key))
	assert.Equal(t, []string{"Amazon EC2"}, service.Dimensions.Values)

	exclusion := expression.And[1]
	require.NotNil(t, exclusion.Not)
	require.NotNil(t, exclusion.Not.Dimensions)
	assert.Equal(t, "RECORD_TYPE", string(exclusion.Not.Dimensions.Key))
	assert.Equal(t, []string{"Support", "Credit"}, exclusion.Not.Dimensions.Values)
}

func TestToExpression_InvalidTree(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.FilterExpression
	}{
		{name: "empty node", filter: domain.FilterExpression{}},
		{
			name: "ambiguous node",
			filter: domain.FilterExpression{
				Dimensions: &domain.DimensionCondition{Key: "SERVICE", Values: []string{"Amazon EC2"}},
				Not:        filterPtr(domain.Dimensions(domain.DimensionRecordType, "Credit")),
			},
		},
		{
			name:   "dimension without values",
			filter: domain.FilterExpression{Dimensions: &domain.DimensionCondition{Key: "SERVICE"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := toExpression(tt.filter)
			require.Error(t, err)

			var validationErr *domain.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func filterPtr(f domain.FilterExpression) *domain.FilterExpression {
	return &f
}
