package model

import "testing"

func TestNormalizeDepartment(t *testing.T) {
	d := NormalizeDepartment(map[string]any{
		"id":             float64(4),
		"name":           "Sanitation",
		"departmentHead": "M. Rao",
		"openReports":    float64(12),
	})
	if d.ID != "4" || d.Name != "Sanitation" {
		t.Errorf("got %+v", d)
	}
	if d.Manager != "M. Rao" {
		t.Errorf("Manager = %q, want fallback to departmentHead", d.Manager)
	}
	if d.OpenReports != 12 || d.ActiveReports != 0 {
		t.Errorf("counts = %d/%d", d.OpenReports, d.ActiveReports)
	}
	if d.AvgResolutionTime != "N/A" {
		t.Errorf("AvgResolutionTime = %q, want N/A", d.AvgResolutionTime)
	}
}

func TestNormalizeOperator(t *testing.T) {
	o := NormalizeOperator(map[string]any{
		"id":             float64(9),
		"operatorName":   "Kiran",
		"phoneNumber":    "+91 98450 00000",
		"specialization": "Electrical",
	})
	if o.ID != "9" || o.Name != "Kiran" {
		t.Errorf("got %+v", o)
	}
	if o.Status != "available" {
		t.Errorf("Status = %q, want available", o.Status)
	}
	if o.Phone != "+91 98450 00000" {
		t.Errorf("Phone = %q", o.Phone)
	}
	if o.Department != "Electrical" || o.Description != "Electrical" {
		t.Errorf("Department/Description = %q/%q", o.Department, o.Description)
	}
}

func TestNormalizeChartData(t *testing.T) {
	c := NormalizeChartData(ChartData{
		PieData: []ChartPoint{{"name": "in-progress", "value": 3.0}, {"name": "resolved", "value": 5.0}},
	})
	if c.PieData[0]["name"] != "In Progress" {
		t.Errorf("pie[0].name = %v", c.PieData[0]["name"])
	}
	if c.PieData[1]["name"] != "resolved" {
		t.Errorf("pie[1].name = %v", c.PieData[1]["name"])
	}
	if c.LineData == nil {
		t.Error("LineData should default to empty slice")
	}
}

func TestHotspot_Normalize(t *testing.T) {
	h := Hotspot{Reports: 3}.Normalize()
	if h.Name != "Unknown Location" || h.Location != "Unknown Location" || h.Color != "#10b981" {
		t.Errorf("got %+v", h)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := DefaultSettings()
	back := SettingsFromMap(s.AsMap())
	if back["preferences"]["theme"] != "light" {
		t.Errorf("theme = %v", back["preferences"]["theme"])
	}
	if got := SettingsFromMap(map[string]any{"version": 2.0}); len(got) != 0 {
		t.Errorf("non-section entries should be dropped, got %v", got)
	}
}
