package domain

import "fmt"

// Dimension keys accepted by the cost filter.
const (
	DimensionService    = "SERVICE"
	DimensionRegion     = "REGION"
	DimensionRecordType = "RECORD_TYPE"
)

// FilterExpression is a tagged union over the three Cost Explorer filter
// variants. Exactly one of Dimensions, And or Not must be set; Validate
// enforces this before the tree is serialized into a vendor expression.
type FilterExpression struct {
	Dimensions *DimensionCondition
	And        []FilterExpression
	Not        *FilterExpression
}

type DimensionCondition struct {
	Key    string
	Values []string
}

func Dimensions(key string, values ...string) FilterExpression {
	return FilterExpression{Dimensions: &DimensionCondition{Key: key, Values: values}}
}

func And(children ...FilterExpression) FilterExpression {
	return FilterExpression{And: children}
}

func Not(child FilterExpression) FilterExpression {
	return FilterExpression{Not: &child}
}

func (f FilterExpression) Validate() error {
	variants := 0
	if f.Dimensions != nil {
		variants++
	}
	if len(f.And) > 0 {
		variants++
	}
	if f.Not != nil {
		variants++
	}
	if variants != 1 {
		return fmt.Errorf("filter expression must have exactly one of Dimensions, And or Not, got %d", variants)
	}

	switch {
	case f.Dimensions != nil:
		if f.Dimensions.Key == "" || len(f.Dimensions.Values) == 0 {
			return fmt.Errorf("dimension condition requires a key and at least one value")
		}
	case len(f.And) > 0:
		for _, child := range f.And {
			if err := child.Validate(); err != nil {
				return err
			}
		}
	case f.Not != nil:
		return f.Not.Validate()
	}
	return nil
}

// FilterOptions is the flat, user-facing shape of a cost filter. The include
// toggles default to true: leaving one unset keeps that charge category in
// the results.
type FilterOptions struct {
	Service    string
	Region     string
	ChargeType string

	IncludeSupport           bool
	IncludeOtherSubscription bool
	IncludeUpfront           bool
	IncludeRefund            bool
	IncludeCredit            bool
	IncludeRIFee             bool
}

// DefaultFilterOptions returns options with every charge category included.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		IncludeSupport:           true,
		IncludeOtherSubscription: true,
		IncludeUpfront:           true,
		IncludeRefund:            true,
		IncludeCredit:            true,
		IncludeRIFee:             true,
	}
}
