package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/pkg/model"
)

func (c *Client) getReports(ctx context.Context, op, path string) ([]model.Report, error) {
	var raw []map[string]any
	if err := c.get(ctx, op, path, &raw); err != nil {
		return nil, err
	}
	return model.NormalizeReports(raw), nil
}

// Reports lists reports with status from the list endpoint serving role.
func (c *Client) Reports(ctx context.Context, role model.Role, status model.ReportStatus) ([]model.Report, error) {
	endpoint, err := access.ReportsEndpoint(role)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	q := url.Values{"status": {string(status)}}
	return c.getReports(ctx, "fetch "+strings.ToLower(status.Label())+" reports", endpoint+"?"+q.Encode())
}

// AssignedReports lists the reports assigned to the signed-in operator.
func (c *Client) AssignedReports(ctx context.Context) ([]model.Report, error) {
	return c.getReports(ctx, "fetch assigned reports", "/api/complaints/assigned-reports")
}

// DepartmentReports lists a department's reports.
func (c *Client) DepartmentReports(ctx context.Context, departmentID string) ([]model.Report, error) {
	if departmentID == "" {
		return nil, model.Required("fetch department reports", "departmentId")
	}
	return c.getReports(ctx, "fetch department reports", "/admin/reports/department/"+url.PathEscape(departmentID))
}

// OperatorReports lists an operator's reports.
func (c *Client) OperatorReports(ctx context.Context, operatorID string) ([]model.Report, error) {
	if operatorID == "" {
		return nil, model.Required("fetch operator reports", "operatorId")
	}
	return c.getReports(ctx, "fetch operator reports",
		"/admin/departments/operators/"+url.PathEscape(operatorID)+"/reports")
}

// ReportDetail fetches the full record of one report.
func (c *Client) ReportDetail(ctx context.Context, reportID string) (*model.Report, error) {
	id := model.StripReportID(reportID)
	if id == "" {
		return nil, model.Required("fetch report details", "reportId")
	}
	var raw map[string]any
	if err := c.get(ctx, "fetch report details", "/api/complaints/"+url.PathEscape(id), &raw); err != nil {
		return nil, err
	}
	r := model.NormalizeReport(raw)
	if r.ID == "" {
		r.ID = id
	}
	return &r, nil
}

// StatusUpdate is the result of UpdateReportStatus.
type StatusUpdate struct {
	ReportID  string             `json:"reportId" yaml:"reportId"`
	NewStatus model.ReportStatus `json:"newStatus" yaml:"newStatus"`
	Message   string             `json:"message" yaml:"message"`
	Report    model.Report       `json:"updatedComplaint" yaml:"updatedComplaint"`
}

// UpdateReportStatus moves a report to status. Console status names
// ("in-progress") are accepted as well as backend enums.
func (c *Client) UpdateReportStatus(ctx context.Context, reportID, status string) (*StatusUpdate, error) {
	id := model.StripReportID(reportID)
	var missing []string
	if id == "" {
		missing = append(missing, "reportId")
	}
	if strings.TrimSpace(status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return nil, model.Required("update report status", missing...)
	}

	backend := model.ParseReportStatus(status)
	q := url.Values{"status": {string(backend)}}
	var raw map[string]any
	err := c.do(ctx, "update report status", http.MethodPut,
		"/api/complaints/"+url.PathEscape(id)+"/status?"+q.Encode(), nil, &raw)
	if err != nil {
		return nil, err
	}
	return &StatusUpdate{
		ReportID:  reportID,
		NewStatus: backend,
		Message:   fmt.Sprintf("Report %s status updated to %s", reportID, status),
		Report:    model.NormalizeReport(raw),
	}, nil
}

// Assignment is the request and result of AssignReport.
type Assignment struct {
	ReportID     string `json:"reportId" yaml:"reportId"`
	DepartmentID string `json:"departmentId" yaml:"departmentId"`
	AssignedTo   string `json:"assignedTo" yaml:"assignedTo"`
}

// AssignResult is the server's view of a completed assignment.
type AssignResult struct {
	Assignment `yaml:",inline"`
	Status     model.ReportStatus `json:"status,omitempty" yaml:"status,omitempty"`
	AssignedAt string             `json:"assignedAt,omitempty" yaml:"assignedAt,omitempty"`
	Message    string             `json:"message" yaml:"message"`
}

// AssignReport assigns a report to an operator of a department. All three
// ids are required.
func (c *Client) AssignReport(ctx context.Context, a Assignment) (*AssignResult, error) {
	req := Assignment{
		ReportID:     model.StripReportID(a.ReportID),
		DepartmentID: strings.TrimSpace(a.DepartmentID),
		AssignedTo:   strings.TrimSpace(a.AssignedTo),
	}
	var missing []string
	if req.ReportID == "" {
		missing = append(missing, "reportId")
	}
	if req.DepartmentID == "" {
		missing = append(missing, "departmentId")
	}
	if req.AssignedTo == "" {
		missing = append(missing, "assignedTo")
	}
	if len(missing) > 0 {
		return nil, model.Required("assign report", missing...)
	}

	var raw map[string]any
	if err := c.do(ctx, "assign report", http.MethodPost, "/api/complaints/assign", req, &raw); err != nil {
		return nil, err
	}
	r := model.NormalizeReport(raw)
	res := &AssignResult{
		Assignment: Assignment{ReportID: r.ID, DepartmentID: req.DepartmentID, AssignedTo: r.AssignedTo},
		Status:     r.Status,
	}
	if res.ReportID == "" {
		res.ReportID = req.ReportID
	}
	if res.AssignedTo == "" {
		res.AssignedTo = req.AssignedTo
	}
	if at, ok := raw["assignedAt"].(string); ok {
		res.AssignedAt = at
	}
	res.Message = "Report assigned successfully to " + res.AssignedTo
	return res, nil
}

// Export describes a generated report export.
type Export struct {
	Success     bool   `json:"success" yaml:"success"`
	DownloadURL string `json:"downloadUrl" yaml:"downloadUrl"`
	FileName    string `json:"fileName" yaml:"fileName"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	Bytes       int64  `json:"bytes" yaml:"bytes"`
}

// ExportReport asks the server to render a report in format (pdf when
// empty) and downloads the result into w.
func (c *Client) ExportReport(ctx context.Context, reportID, format string, w io.Writer) (*Export, error) {
	id := model.StripReportID(reportID)
	if id == "" {
		return nil, model.Required("export report", "reportId")
	}
	if format == "" {
		format = "pdf"
	}
	op := "export report as " + strings.ToUpper(format)

	var exp Export
	q := url.Values{"format": {format}}
	if err := c.do(ctx, op, http.MethodPost, "/api/exports/reports/"+url.PathEscape(id)+"?"+q.Encode(), nil, &exp); err != nil {
		return nil, err
	}
	if !exp.Success || exp.DownloadURL == "" {
		msg := exp.Message
		if msg == "" {
			msg = "Failed to generate export file"
		}
		return nil, &FetchError{Op: op, Message: msg}
	}

	n, err := c.download(ctx, "download export", exp.DownloadURL, w)
	if err != nil {
		return nil, err
	}
	exp.Bytes = n
	exp.Message = fmt.Sprintf("Report exported successfully as %s", strings.ToUpper(format))
	return &exp, nil
}
