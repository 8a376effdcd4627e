package aws_ce

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/billing-atlas/pkg/models/domain"
)

// normalizeReport flattens the vendor's nested per-period response into the
// internal report model. Result order mirrors the vendor order, which is
// chronological; no re-sorting happens here.
func normalizeReport(query domain.CostQuery, out *costexplorer.GetCostAndUsageOutput) *domain.CostReport {
	report := &domain.CostReport{
		Period:        query.Period,
		Granularity:   query.Granularity,
		GroupBy:       query.GroupBy,
		Results:       make([]domain.ResultByTime, 0, len(out.ResultsByTime)),
		NextPageToken: aws.ToString(out.NextPageToken),
	}

	for _, entry := range out.ResultsByTime {
		result := domain.ResultByTime{
			Estimated: entry.Estimated,
		}
		if entry.TimePeriod != nil {
			result.Period = domain.TimePeriod{
				Start: aws.ToString(entry.TimePeriod.Start),
				End:   aws.ToString(entry.TimePeriod.End),
			}
		}

		for _, group := range entry.Groups {
			result.Groups = append(result.Groups, domain.Group{
				Keys:    group.Keys,
				Metrics: normalizeMetrics(group.Metrics),
			})
		}

		// Total only appears when no grouping was requested.
		if len(entry.Groups) == 0 && len(entry.Total) > 0 {
			total := normalizeMetrics(entry.Total)
			result.Total = &total
		}

		report.Results = append(report.Results, result)
	}

	return report
}

// normalizeMetrics copies only the metrics the vendor returned. An absent
// metric stays nil rather than defaulting to a zero amount.
func normalizeMetrics(values map[string]types.MetricValue) domain.GroupMetrics {
	var metrics domain.GroupMetrics
	if value, ok := values["BlendedCost"]; ok {
		metrics.BlendedCost = normalizeMetric(value)
	}
	if value, ok := values["UnblendedCost"]; ok {
		metrics.UnblendedCost = normalizeMetric(value)
	}
	if value, ok := values["UsageQuantity"]; ok {
		metrics.UsageQuantity = normalizeMetric(value)
	}
	return metrics
}

func normalizeMetric(value types.MetricValue) *domain.Metric {
	metric := &domain.Metric{
		Amount: aws.ToString(value.Amount),
		Unit:   aws.ToString(value.Unit),
	}
	if metric.Amount == "" {
		metric.Amount = "0"
	}
	if metric.Unit == "" {
		metric.Unit = "USD"
	}
	return metric
}
