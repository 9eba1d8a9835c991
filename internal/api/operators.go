package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/me/civicflow/pkg/model"
)

// DepartmentOperators lists the operators of a department.
func (c *Client) DepartmentOperators(ctx context.Context, departmentID string) ([]model.Operator, error) {
	if departmentID == "" {
		return nil, model.Required("fetch department operators", "departmentId")
	}
	var raw []map[string]any
	err := c.get(ctx, "fetch department operators",
		"/admin/departments/"+url.PathEscape(departmentID)+"/operators", &raw)
	if err != nil {
		return nil, err
	}
	out := make([]model.Operator, 0, len(raw))
	for _, m := range raw {
		out = append(out, model.NormalizeOperator(m))
	}
	return out, nil
}

// Operator fetches one operator.
func (c *Client) Operator(ctx context.Context, id string) (*model.Operator, error) {
	if id == "" {
		return nil, model.Required("fetch operator", "operatorId")
	}
	var raw map[string]any
	if err := c.get(ctx, "fetch operator", "/admin/departments/operators/"+url.PathEscape(id), &raw); err != nil {
		return nil, err
	}
	op := model.NormalizeOperator(raw)
	return &op, nil
}

// CreateOperator adds an operator to the signed-in head's department.
func (c *Client) CreateOperator(ctx context.Context, o model.NewOperator) (map[string]any, error) {
	var missing []string
	if strings.TrimSpace(o.OperatorName) == "" {
		missing = append(missing, "operatorName")
	}
	if strings.TrimSpace(o.PhoneNumber) == "" {
		missing = append(missing, "phoneNumber")
	}
	if len(missing) > 0 {
		return nil, model.Required("create operator", missing...)
	}
	var out map[string]any
	if err := c.do(ctx, "create operator", http.MethodPost, "/department/operators/create", o, &out); err != nil {
		return nil, err
	}
	return out, nil
}
