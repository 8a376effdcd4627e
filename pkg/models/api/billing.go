package api

import (
	"time"

	"github.com/de-tools/billing-atlas/pkg/models/domain"
)

type TimePeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GroupBy keeps the vendor's field casing: the dashboard sends group-by
// definitions in the exact shape the Cost Explorer API expects.
type GroupBy struct {
	Type string `json:"Type"`
	Key  string `json:"Key"`
}

// FilterExpression mirrors the vendor filter tree with its exact key names
// (Dimensions, And, Not, Key, Values).
type FilterExpression struct {
	Dimensions *DimensionValues   `json:"Dimensions,omitempty"`
	And        []FilterExpression `json:"And,omitempty"`
	Not        *FilterExpression  `json:"Not,omitempty"`
}

type DimensionValues struct {
	Key    string   `json:"Key"`
	Values []string `json:"Values"`
}

type Metric struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type GroupMetrics struct {
	BlendedCost   *Metric `json:"BlendedCost,omitempty"`
	UnblendedCost *Metric `json:"UnblendedCost,omitempty"`
	UsageQuantity *Metric `json:"UsageQuantity,omitempty"`
}

type Group struct {
	Keys    []string     `json:"keys"`
	Metrics GroupMetrics `json:"metrics"`
}

type ResultByTime struct {
	TimePeriod TimePeriod    `json:"time_period"`
	Total      *GroupMetrics `json:"total,omitempty"`
	Groups     []Group       `json:"groups"`
	Estimated  bool          `json:"estimated"`
}

type CostDataRequest struct {
	Credentials domain.Credentials `json:"credentials"`
	TimePeriod  TimePeriod         `json:"time_period"`
	Granularity string             `json:"granularity"`
	GroupBy     []GroupBy          `json:"group_by"`
	Metrics     []string           `json:"metrics"`
	Filter      *FilterExpression  `json:"filter,omitempty"`
}

type CostDataResponse struct {
	TimePeriod    TimePeriod     `json:"time_period"`
	Granularity   string         `json:"granularity"`
	GroupBy       []GroupBy      `json:"group_by"`
	Results       []ResultByTime `json:"results"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// SimpleCostDataRequest is the loosely-typed convenience payload. Include
// toggles are pointers so an omitted toggle defaults to "included".
type SimpleCostDataRequest struct {
	Credentials      domain.Credentials `json:"credentials"`
	StartDate        string             `json:"start_date"`
	EndDate          string             `json:"end_date"`
	Granularity      string             `json:"granularity"`
	GroupByDimension string             `json:"group_by_dimension"`
	Metrics          string             `json:"metrics"`
	ServiceFilter    string             `json:"service_filter"`
	RegionFilter     string             `json:"region_filter"`
	ChargeType       string             `json:"charge_type"`

	IncludeSupport           *bool `json:"include_support"`
	IncludeOtherSubscription *bool `json:"include_other_subscription"`
	IncludeUpfront           *bool `json:"include_upfront"`
	IncludeRefund            *bool `json:"include_refund"`
	IncludeCredit            *bool `json:"include_credit"`
	IncludeRIFee             *bool `json:"include_ri_fee"`
}

type DimensionRequest struct {
	Credentials domain.Credentials `json:"credentials"`
	Dimension   string             `json:"dimension"`
	TimePeriod  TimePeriod         `json:"time_period"`
}

type DimensionResponse struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}

type AccountInfoRequest struct {
	Credentials domain.Credentials `json:"credentials"`
}

type AccountInfoResponse struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	ARN       string `json:"arn"`
}

type CredentialValidationRequest struct {
	Credentials domain.Credentials `json:"credentials"`
}

type CredentialValidationResponse struct {
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
	AccountID string `json:"account_id,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
