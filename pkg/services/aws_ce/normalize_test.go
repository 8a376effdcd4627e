package aws_ce

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/billing-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuery() domain.CostQuery {
	return domain.CostQuery{
		Period:      domain.TimePeriod{Start: "2025-08-01", End: "2025-08-31"},
		Granularity: domain.GranularityDaily,
		GroupBy:     []domain.GroupBy{{Type: "DIMENSION", Key: "SERVICE"}},
		Metrics:     []string{"BlendedCost"},
	}
}

func TestNormalizeReport_EchoesQueryAxes(t *testing.T) {
	query := testQuery()
	report := normalizeReport(query, &costexplorer.GetCostAndUsageOutput{})

	assert.Equal(t, query.Period, report.Period)
	assert.Equal(t, query.Granularity, report.Granularity)
	assert.Equal(t, query.GroupBy, report.GroupBy)
	assert.Empty(t, report.Results)
	assert.Empty(t, report.NextPageToken)
}

func TestNormalizeReport_Groups(t *testing.T) {
	output := &costexplorer.GetCostAndUsageOutput{
		NextPageToken: aws.String("opaque-token"),
		ResultsByTime: []types.ResultByTime{
			{
				TimePeriod: &types.DateInterval{
					Start: aws.String("2025-08-01"),
					End:   aws.String("2025-08-02"),
				},
				Estimated: true,
				Groups: []types.Group{
					{
						Keys: []string{"Amazon EC2", "us-east-1"},
						Metrics: map[string]types.MetricValue{
							"BlendedCost": {Amount: aws.String("12.34"), Unit: aws.String("USD")},
						},
					},
				},
			},
		},
	}

	report := normalizeReport(testQuery(), output)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.Equal(t, domain.TimePeriod{Start: "2025-08-01", End: "2025-08-02"}, result.Period)
	assert.True(t, result.Estimated)
	assert.Nil(t, result.Total)

	require.Len(t, result.Groups, 1)
	group := result.Groups[0]
	assert.Equal(t, []string{"Amazon EC2", "us-east-1"}, group.Keys)

	// Only the returned metric is populated; the others stay absent.
	require.NotNil(t, group.Metrics.BlendedCost)
	assert.Equal(t, "12.34", group.Metrics.BlendedCost.Amount)
	assert.Equal(t, "USD", group.Metrics.BlendedCost.Unit)
	assert.Nil(t, group.Metrics.UnblendedCost)
	assert.Nil(t, group.Metrics.UsageQuantity)

	assert.Equal(t, "opaque-token", report.NextPageToken)
}

func TestNormalizeReport_TotalWithoutGroups(t *testing.T) {
	output := &costexplorer.GetCostAndUsageOutput{
		ResultsByTime: []types.ResultByTime{
			{
				TimePeriod: &types.DateInterval{
					Start: aws.String("2025-08-01"),
					End:   aws.String("2025-09-01"),
				},
				Total: map[string]types.MetricValue{
					"BlendedCost":   {Amount: aws.String("100.00"), Unit: aws.String("USD")},
					"UsageQuantity": {Amount: aws.String("740"), Unit: aws.String("Hrs")},
				},
			},
		},
	}

	report := normalizeReport(testQuery(), output)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	assert.False(t, result.Estimated, "estimated defaults to false when the vendor omits it")
	assert.Empty(t, result.Groups)

	require.NotNil(t, result.Total)
	require.NotNil(t, result.Total.BlendedCost)
	assert.Equal(t, "100.00", result.Total.BlendedCost.Amount)
	require.NotNil(t, result.Total.UsageQuantity)
	assert.Equal(t, "Hrs", result.Total.UsageQuantity.Unit)
	assert.Nil(t, result.Total.UnblendedCost)
}

func TestNormalizeReport_PreservesVendorOrder(t *testing.T) {
	output := &costexplorer.GetCostAndUsageOutput{
		ResultsByTime: []types.ResultByTime{
			{TimePeriod: &types.DateInterval{Start: aws.String("2025-08-01"), End: aws.String("2025-08-02")}},
			{TimePeriod: &types.DateInterval{Start: aws.String("2025-08-02"), End: aws.String("2025-08-03")}},
			{TimePeriod: &types.DateInterval{Start: aws.String("2025-08-03"), End: aws.String("2025-08-04")}},
		},
	}

	report := normalizeReport(testQuery(), output)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "2025-08-01", report.Results[0].Period.Start)
	assert.Equal(t, "2025-08-02", report.Results[1].Period.Start)
	assert.Equal(t, "2025-08-03", report.Results[2].Period.Start)
}

func TestNormalizeMetric_Defaults(t *testing.T) {
	metric := normalizeMetric(types.MetricValue{})
	assert.Equal(t, "0", metric.Amount)
	assert.Equal(t, "USD", metric.Unit)

	metric = normalizeMetric(types.MetricValue{Amount: aws.String("1.5")})
	assert.Equal(t, "1.5", metric.Amount)
	assert.Equal(t, "USD", metric.Unit)
}

func TestNormalizeMetrics_IgnoresUnknownNames(t *testing.T) {
	metrics := normalizeMetrics(map[string]types.MetricValue{
		"AmortizedCost": {Amount: aws.String("9.99"), Unit: aws.String("USD")},
	})

	assert.Nil(t, metrics.BlendedCost)
	assert.Nil(t, metrics.UnblendedCost)
	assert.Nil(t, metrics.UsageQuantity)
}
