package api

import (
	"context"

	"github.com/me/civicflow/pkg/model"
)

// AnalyticsCharts fetches the analytics series.
func (c *Client) AnalyticsCharts(ctx context.Context) (*model.AnalyticsChartData, error) {
	var data model.AnalyticsChartData
	if err := c.get(ctx, "fetch analytics chart data", "/api/analytics/chart-data", &data); err != nil {
		return nil, err
	}
	if data.ReportVolume == nil {
		data.ReportVolume = []model.ChartPoint{}
	}
	if data.IssueCategories == nil {
		data.IssueCategories = []model.ChartPoint{}
	}
	rt := make([]model.ResponseTime, 0, len(data.ResponseTime))
	for _, r := range data.ResponseTime {
		if r.Name == "" {
			r.Name = "Unknown"
		}
		rt = append(rt, r)
	}
	data.ResponseTime = rt
	return &data, nil
}

// Hotspots fetches the locations with the most reports.
func (c *Client) Hotspots(ctx context.Context) ([]model.Hotspot, error) {
	var raw []model.Hotspot
	if err := c.get(ctx, "fetch report hotspots", "/api/analytics/report-hotspots", &raw); err != nil {
		return nil, err
	}
	out := make([]model.Hotspot, 0, len(raw))
	for _, h := range raw {
		out = append(out, h.Normalize())
	}
	return out, nil
}

// AnalyticsStats fetches the analytics counters.
func (c *Client) AnalyticsStats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	if err := c.get(ctx, "fetch analytics stats", "/api/analytics/stats", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ExportAnalytics asks the server for an analytics export.
func (c *Client) ExportAnalytics(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "export analytics data", "/api/exports/analytics", &out); err != nil {
		return nil, err
	}
	return out, nil
}
