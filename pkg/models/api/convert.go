package api

import "github.com/de-tools/billing-atlas/pkg/models/domain"

func (p TimePeriod) ToDomain() (domain.TimePeriod, error) {
	return domain.NewTimePeriod(p.Start, p.End)
}

func TimePeriodFromDomain(p domain.TimePeriod) TimePeriod {
	return TimePeriod{Start: p.Start, End: p.End}
}

func (g GroupBy) ToDomain() domain.GroupBy {
	return domain.GroupBy{Type: g.Type, Key: g.Key}
}

func GroupByFromDomain(g domain.GroupBy) GroupBy {
	return GroupBy{Type: g.Type, Key: g.Key}
}

func (f FilterExpression) ToDomain() domain.FilterExpression {
	var out domain.FilterExpression
	if f.Dimensions != nil {
		out.Dimensions = &domain.DimensionCondition{
			Key:    f.Dimensions.Key,
			Values: f.Dimensions.Values,
		}
	}
	for _, child := range f.And {
		out.And = append(out.And, child.ToDomain())
	}
	if f.Not != nil {
		child := f.Not.ToDomain()
		out.Not = &child
	}
	return out
}

func metricFromDomain(m *domain.Metric) *Metric {
	if m == nil {
		return nil
	}
	return &Metric{Amount: m.Amount, Unit: m.Unit}
}

func groupMetricsFromDomain(m domain.GroupMetrics) GroupMetrics {
	return GroupMetrics{
		BlendedCost:   metricFromDomain(m.BlendedCost),
		UnblendedCost: metricFromDomain(m.UnblendedCost),
		UsageQuantity: metricFromDomain(m.UsageQuantity),
	}
}

func CostDataResponseFromDomain(report *domain.CostReport) CostDataResponse {
	resp := CostDataResponse{
		TimePeriod:    TimePeriodFromDomain(report.Period),
		Granularity:   string(report.Granularity),
		GroupBy:       make([]GroupBy, 0, len(report.GroupBy)),
		Results:       make([]ResultByTime, 0, len(report.Results)),
		NextPageToken: report.NextPageToken,
	}
	for _, g := range report.GroupBy {
		resp.GroupBy = append(resp.GroupBy, GroupByFromDomain(g))
	}
	for _, r := range report.Results {
		result := ResultByTime{
			TimePeriod: TimePeriodFromDomain(r.Period),
			Groups:     make([]Group, 0, len(r.Groups)),
			Estimated:  r.Estimated,
		}
		if r.Total != nil {
			total := groupMetricsFromDomain(*r.Total)
			result.Total = &total
		}
		for _, g := range r.Groups {
			result.Groups = append(result.Groups, Group{
				Keys:    g.Keys,
				Metrics: groupMetricsFromDomain(g.Metrics),
			})
		}
		resp.Results = append(resp.Results, result)
	}
	return resp
}
