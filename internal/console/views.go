package console

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/me/civicflow/internal/reconcile"
	"github.com/me/civicflow/pkg/model"
)

// Report list views.
const (
	ViewAssigned   = "assigned"
	ViewPending    = "pending"
	ViewInProgress = "in-progress"
	ViewResolved   = "resolved"
)

// Dashboard loads the dashboard in one grouped fetch. Either every part
// arrives or the call fails and nothing partial is returned.
func (c *Console) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	user, err := c.requireUser()
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	var dash model.Dashboard

	if user.Role == model.RoleDepartmentHead {
		if user.DepartmentID == "" {
			return nil, model.Required("load dashboard", "departmentId")
		}
		g.Go(func() error {
			d, err := c.API.Department(ctx, user.DepartmentID)
			dash.Department = d
			return err
		})
		g.Go(func() error {
			r, err := c.API.DepartmentReports(ctx, user.DepartmentID)
			dash.Reports = r
			return err
		})
	} else {
		g.Go(func() error {
			s, err := c.API.DashboardStats(ctx)
			dash.Stats = s
			return err
		})
		g.Go(func() error {
			ch, err := c.API.DashboardCharts(ctx)
			dash.Charts = ch
			return err
		})
		g.Go(func() error {
			a, err := c.API.RecentActivity(ctx)
			dash.Activity = a
			return err
		})
		g.Go(func() error {
			w, err := c.API.DepartmentData(ctx)
			dash.Workload = w
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}

// Reports lists the reports of a view for the current user.
func (c *Console) Reports(ctx context.Context, view string) ([]model.Report, error) {
	user, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	switch view {
	case ViewAssigned:
		return c.API.AssignedReports(ctx)
	case ViewPending, ViewInProgress, ViewResolved:
		return c.API.Reports(ctx, user.Role, model.ParseReportStatus(view))
	}
	return nil, fmt.Errorf("unknown report view %q", view)
}

// FindReport returns the summary of report id from a view's list.
func (c *Console) FindReport(ctx context.Context, view, id string) (*model.Report, error) {
	reports, err := c.Reports(ctx, view)
	if err != nil {
		return nil, err
	}
	if r := Find(reports, id); r != nil {
		return r, nil
	}
	return nil, fmt.Errorf("report %s not found in %s reports", id, view)
}

// Find returns the report whose id matches id, ignoring a leading "R".
func Find(reports []model.Report, id string) *model.Report {
	want := model.StripReportID(id)
	for i := range reports {
		if model.StripReportID(reports[i].ID) == want {
			r := reports[i]
			return &r
		}
	}
	return nil
}

// ReportDetails fetches the detail of a report and reconciles it with the
// summary already held, so fields the detail omits keep their known values.
func (c *Console) ReportDetails(ctx context.Context, summary *model.Report) (*model.Report, error) {
	if summary == nil || summary.ID == "" {
		return nil, model.Required("view report details", "reportId")
	}
	detail, err := c.API.ReportDetail(ctx, summary.ID)
	if err != nil {
		return nil, err
	}
	return reconcile.Reports(summary, detail), nil
}

// DepartmentView is a department with its operators and reports.
type DepartmentView struct {
	Department *model.Department `json:"department" yaml:"department"`
	Operators  []model.Operator  `json:"operators" yaml:"operators"`
	Reports    []model.Report    `json:"reports" yaml:"reports"`
}

// Department loads a department page in one grouped fetch.
func (c *Console) Department(ctx context.Context, id string) (*DepartmentView, error) {
	g, ctx := errgroup.WithContext(ctx)
	var v DepartmentView
	g.Go(func() error {
		d, err := c.API.Department(ctx, id)
		v.Department = d
		return err
	})
	g.Go(func() error {
		ops, err := c.API.DepartmentOperators(ctx, id)
		v.Operators = ops
		return err
	})
	g.Go(func() error {
		r, err := c.API.DepartmentReports(ctx, id)
		v.Reports = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &v, nil
}

// OperatorView is an operator with the reports assigned to them.
type OperatorView struct {
	Operator *model.Operator `json:"operator" yaml:"operator"`
	Reports  []model.Report  `json:"reports" yaml:"reports"`
}

// Operator loads an operator page in one grouped fetch.
func (c *Console) Operator(ctx context.Context, id string) (*OperatorView, error) {
	g, ctx := errgroup.WithContext(ctx)
	var v OperatorView
	g.Go(func() error {
		op, err := c.API.Operator(ctx, id)
		v.Operator = op
		return err
	})
	g.Go(func() error {
		r, err := c.API.OperatorReports(ctx, id)
		v.Reports = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &v, nil
}

// DepartmentReport opens a report from a department page: the summary comes
// from that department's report list and is reconciled with the detail.
func (c *Console) DepartmentReport(ctx context.Context, departmentID, reportID string) (*model.Report, error) {
	return c.pageReport(ctx, "department", departmentID, reportID, c.API.DepartmentReports)
}

// OperatorReport opens a report from an operator page.
func (c *Console) OperatorReport(ctx context.Context, operatorID, reportID string) (*model.Report, error) {
	return c.pageReport(ctx, "operator", operatorID, reportID, c.API.OperatorReports)
}

func (c *Console) pageReport(ctx context.Context, page, pageID, reportID string,
	list func(context.Context, string) ([]model.Report, error)) (*model.Report, error) {
	if model.StripReportID(reportID) == "" {
		return nil, model.Required("view report details", "reportId")
	}
	reports, err := list(ctx, pageID)
	if err != nil {
		return nil, err
	}
	summary := Find(reports, reportID)
	if summary == nil {
		c.logger.Debug("report not in page list, loading details only", "page", page, "page_id", pageID, "report_id", reportID)
		summary = &model.Report{ID: reportID}
	}
	return c.ReportDetails(ctx, summary)
}

// Analytics is the analytics page.
type Analytics struct {
	Stats    map[string]any            `json:"stats" yaml:"stats"`
	Charts   *model.AnalyticsChartData `json:"charts" yaml:"charts"`
	Hotspots []model.Hotspot           `json:"hotspots" yaml:"hotspots"`
}

// Analytics loads the analytics page in one grouped fetch.
func (c *Console) Analytics(ctx context.Context) (*Analytics, error) {
	g, ctx := errgroup.WithContext(ctx)
	var a Analytics
	g.Go(func() error {
		s, err := c.API.AnalyticsStats(ctx)
		a.Stats = s
		return err
	})
	g.Go(func() error {
		ch, err := c.API.AnalyticsCharts(ctx)
		a.Charts = ch
		return err
	})
	g.Go(func() error {
		h, err := c.API.Hotspots(ctx)
		a.Hotspots = h
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &a, nil
}
