package model

import "testing"

func TestNewResponse(t *testing.T) {
	resp := NewResponse("req_1", "/dashboard", map[string]int{"total": 3})
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.View != "/dashboard" {
		t.Errorf("View = %q, want /dashboard", resp.View)
	}
	if resp.Error != nil {
		t.Errorf("Error = %v, want nil", resp.Error)
	}
	if resp.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("req_2", &APIError{Message: "Failed to fetch departments"})
	if resp.Status != "error" {
		t.Errorf("Status = %q, want error", resp.Status)
	}
	if resp.Data != nil {
		t.Errorf("Data = %v, want nil", resp.Data)
	}
	if resp.Error == nil || resp.Error.Message != "Failed to fetch departments" {
		t.Errorf("Error = %+v", resp.Error)
	}
}
