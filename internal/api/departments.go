package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/me/civicflow/pkg/model"
)

// Departments lists every department.
func (c *Client) Departments(ctx context.Context) ([]model.Department, error) {
	var raw []map[string]any
	if err := c.get(ctx, "fetch departments", "/admin/departments/list", &raw); err != nil {
		return nil, err
	}
	out := make([]model.Department, 0, len(raw))
	for _, m := range raw {
		out = append(out, model.NormalizeDepartment(m))
	}
	return out, nil
}

// Department fetches one department.
func (c *Client) Department(ctx context.Context, id string) (*model.Department, error) {
	if id == "" {
		return nil, model.Required("fetch department", "departmentId")
	}
	var raw map[string]any
	if err := c.get(ctx, "fetch department", "/admin/departments/"+url.PathEscape(id), &raw); err != nil {
		return nil, err
	}
	d := model.NormalizeDepartment(raw)
	return &d, nil
}

// DepartmentData fetches the department workload panel.
func (c *Client) DepartmentData(ctx context.Context) (*model.DepartmentData, error) {
	var data model.DepartmentData
	if err := c.get(ctx, "fetch department data", "/admin/departments/data", &data); err != nil {
		return nil, err
	}
	data = data.Normalize()
	return &data, nil
}

// CreateDepartment registers a department together with its head's login.
func (c *Client) CreateDepartment(ctx context.Context, d model.NewDepartment) (map[string]any, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, model.Required("create department", "name")
	}
	var out map[string]any
	if err := c.do(ctx, "create department", http.MethodPost, "/admin/departments/create", d, &out); err != nil {
		return nil, err
	}
	return out, nil
}
