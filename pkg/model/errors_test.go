package model

import "testing"

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Status: 400, Message: "Invalid phone number"}
	want := "HTTP 400: Invalid phone number"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantNil bool
		wantMsg string
	}{
		{"message", `{"message":"Invalid credentials"}`, false, "Invalid credentials"},
		{"empty message", `{"message":""}`, true, ""},
		{"no message", `{"error":"x"}`, true, ""},
		{"not json", `<html>bad gateway</html>`, true, ""},
		{"empty body", ``, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAPIError(500, []byte(tt.body))
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ParseAPIError() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ParseAPIError() = nil")
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
			if got.Status != 500 {
				t.Errorf("Status = %d, want 500", got.Status)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	err := Required("assign report", "reportId")
	want := "assign report: reportId is required"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = Required("assign report", "reportId", "departmentId", "assignedTo")
	if len(err.Details) != 3 {
		t.Errorf("Details length = %d, want 3", len(err.Details))
	}
	if got := err.Error(); got != "assign report: 3 invalid fields" {
		t.Errorf("Error() = %q", got)
	}
}
