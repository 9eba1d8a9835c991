package api

import (
	"context"

	"github.com/me/civicflow/pkg/model"
)

// DashboardStats fetches the headline counters.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.get(ctx, "fetch dashboard statistics", "/admin/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// DashboardCharts fetches the dashboard pie and line series.
func (c *Client) DashboardCharts(ctx context.Context) (*model.ChartData, error) {
	var data model.ChartData
	if err := c.get(ctx, "fetch dashboard chart data", "/admin/dashboard/chart-data", &data); err != nil {
		return nil, err
	}
	data = model.NormalizeChartData(data)
	return &data, nil
}

// RecentActivity fetches the recent-activity feed.
func (c *Client) RecentActivity(ctx context.Context) ([]model.Activity, error) {
	var activity []model.Activity
	if err := c.get(ctx, "fetch recent activity", "/admin/dashboard/recent-activity", &activity); err != nil {
		return nil, err
	}
	return activity, nil
}
