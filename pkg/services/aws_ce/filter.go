package aws_ce

import (
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/billing-atlas/pkg/models/domain"
)

// chargeTypeExclusions maps each include toggle to the RECORD_TYPE label it
// excludes when disabled. Emission order is fixed and observable in the
// resulting filter tree.
var chargeTypeExclusions = []struct {
	included func(domain.FilterOptions) bool
	label    string
}{
	{func(o domain.FilterOptions) bool { return o.IncludeSupport }, "Support"},
	{func(o domain.FilterOptions) bool { return o.IncludeOtherSubscription }, "Other_Subscription"},
	{func(o domain.FilterOptions) bool { return o.IncludeUpfront }, "Fee"},
	{func(o domain.FilterOptions) bool { return o.IncludeRefund }, "Refund"},
	{func(o domain.FilterOptions) bool { return o.IncludeCredit }, "Credit"},
	{func(o domain.FilterOptions) bool { return o.IncludeRIFee }, "RIFee"},
}

// BuildFilter translates flat filter options into the vendor filter tree.
// Leaves are emitted in order: service, region, charge type, then a single
// Not leaf covering every excluded charge category. Zero leaves yields nil,
// a single leaf is returned bare, two or more are combined under And.
func BuildFilter(opts domain.FilterOptions) *domain.FilterExpression {
	var conditions []domain.FilterExpression

	if opts.Service != "" {
		conditions = append(conditions, domain.Dimensions(domain.DimensionService, opts.Service))
	}
	if opts.Region != "" {
		conditions = append(conditions, domain.Dimensions(domain.DimensionRegion, opts.Region))
	}
	if opts.ChargeType != "" {
		conditions = append(conditions, domain.Dimensions(domain.DimensionRecordType, opts.ChargeType))
	}

	var excluded []string
	for _, exclusion := range chargeTypeExclusions {
		if !exclusion.included(opts) {
			excluded = append(excluded, exclusion.label)
		}
	}
	if len(excluded) > 0 {
		conditions = append(conditions, domain.Not(domain.Dimensions(domain.DimensionRecordType, excluded...)))
	}

	switch len(conditions) {
	case 0:
		return nil
	case 1:
		return &conditions[0]
	default:
		combined := domain.And(conditions...)
		return &combined
	}
}

// toExpression serializes a validated filter tree into the vendor expression
// shape. The switch is exhaustive over the union variants; Validate
// guarantees exactly one branch is populated per node.
func toExpression(filter domain.FilterExpression) (*types.Expression, error) {
	if err := filter.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	return buildExpression(filter), nil
}

func buildExpression(filter domain.FilterExpression) *types.Expression {
	switch {
	case filter.Dimensions != nil:
		return &types.Expression{
			Dimensions: &types.DimensionValues{
				Key:    types.Dimension(filter.Dimensions.Key),
				Values: filter.Dimensions.Values,
			},
		}
	case len(filter.And) > 0:
		children := make([]types.Expression, 0, len(filter.And))
		for _, child := range filter.And {
			children = append(children, *buildExpression(child))
		}
		return &types.Expression{And: children}
	default:
		return &types.Expression{Not: buildExpression(*filter.Not)}
	}
}
