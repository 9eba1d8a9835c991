package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/me/civicflow/pkg/model"
)

func TestMerge_KeepsKnownValues(t *testing.T) {
	original := map[string]any{"priority": "HIGH", "coordinates": nil}
	update := map[string]any{"coordinates": map[string]any{"lat": 1.0, "lng": 2.0}, "priority": nil}

	got := Merge(original, update)
	require.Equal(t, map[string]any{
		"priority":    "HIGH",
		"coordinates": map[string]any{"lat": 1.0, "lng": 2.0},
	}, got)
}

func TestMerge_EmptySliceDoesNotOverwrite(t *testing.T) {
	original := map[string]any{"attachments": []any{map[string]any{"id": 1.0}}}
	got := Merge(original, map[string]any{"attachments": []any{}})
	require.Equal(t, []any{map[string]any{"id": 1.0}}, got["attachments"])
}

func TestMerge_Absent(t *testing.T) {
	require.Equal(t, map[string]any{"a": 1}, Merge(nil, map[string]any{"a": 1}))
	require.Equal(t, map[string]any{"a": 1}, Merge(map[string]any{"a": 1}, nil))
	require.Equal(t, map[string]any{}, Merge(nil, nil))
}

func TestMerge_Rules(t *testing.T) {
	tests := []struct {
		name     string
		original map[string]any
		update   map[string]any
		want     map[string]any
	}{
		{"meaningful overwrite", map[string]any{"status": "PENDING"}, map[string]any{"status": "RESOLVED"}, map[string]any{"status": "RESOLVED"}},
		{"empty string kept out", map[string]any{"title": "Pothole"}, map[string]any{"title": ""}, map[string]any{"title": "Pothole"}},
		{"new key added", map[string]any{"a": 1}, map[string]any{"b": 2}, map[string]any{"a": 1, "b": 2}},
		{"unmeaningful new key dropped", map[string]any{"a": 1}, map[string]any{"b": nil}, map[string]any{"a": 1}},
		{"zero number is information", map[string]any{"n": 5.0}, map[string]any{"n": 0.0}, map[string]any{"n": 0.0}},
		{"false is information", map[string]any{"ok": true}, map[string]any{"ok": false}, map[string]any{"ok": false}},
		{"empty object is information", map[string]any{"m": map[string]any{"x": 1}}, map[string]any{"m": map[string]any{}}, map[string]any{"m": map[string]any{}}},
		{"typed empty slice", map[string]any{"ids": []string{"1"}}, map[string]any{"ids": []string{}}, map[string]any{"ids": []string{"1"}}},
		{"empty original present", map[string]any{}, map[string]any{"a": "x", "b": ""}, map[string]any{"a": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Merge(tt.original, tt.update))
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	original := map[string]any{"a": "1", "b": "2"}
	update := map[string]any{"a": "x", "c": "3"}

	got := Merge(original, update)
	got["d"] = "4"

	require.Equal(t, map[string]any{"a": "1", "b": "2"}, original)
	require.Equal(t, map[string]any{"a": "x", "c": "3"}, update)

	only := Merge(nil, update)
	only["z"] = 1
	require.NotContains(t, update, "z")
}

func TestMerge_ShallowReplacesObjects(t *testing.T) {
	original := map[string]any{"loc": map[string]any{"lat": 1.0, "label": "Main St"}}
	update := map[string]any{"loc": map[string]any{"lat": 2.0}}
	require.Equal(t, map[string]any{"lat": 2.0}, Merge(original, update)["loc"])
}

func TestMergeDeep(t *testing.T) {
	original := map[string]any{
		"profile": map[string]any{"name": "Alice", "phone": "555"},
		"tags":    []any{"a"},
		"system":  map[string]any{"timezone": "UTC"},
	}
	update := map[string]any{
		"profile": map[string]any{"name": "", "phone": "777", "email": "a@city.gov"},
		"tags":    []any{},
		"system":  "flat",
	}

	got := MergeDeep(original, update)
	require.Equal(t, map[string]any{
		"profile": map[string]any{"name": "Alice", "phone": "777", "email": "a@city.gov"},
		"tags":    []any{"a"},
		"system":  "flat",
	}, got)
	require.Equal(t, "555", original["profile"].(map[string]any)["phone"], "input mutated")
}

func TestMergeDeep_Absent(t *testing.T) {
	require.Equal(t, map[string]any{"a": 1}, MergeDeep(nil, map[string]any{"a": 1}))
	require.Equal(t, map[string]any{"a": 1}, MergeDeep(map[string]any{"a": 1}, nil))
}

func TestMeaningful(t *testing.T) {
	var nilPtr *model.Report
	var nilMap map[string]any
	require.False(t, Meaningful(nil))
	require.False(t, Meaningful(""))
	require.False(t, Meaningful([]any{}))
	require.False(t, Meaningful(nilPtr))
	require.False(t, Meaningful(nilMap))
	require.True(t, Meaningful(" "))
	require.True(t, Meaningful(0))
	require.True(t, Meaningful([]any{nil}))
}

func TestReports(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	summary := &model.Report{
		ID:         "101",
		Title:      "Broken streetlight",
		Priority:   model.PriorityHigh,
		Status:     model.ReportStatusInProgress,
		Department: "Electrical",
		CreatedAt:  &created,
		Attachments: []model.Attachment{
			{ID: "a1", Type: "image", URL: "https://cdn/a1.jpg"},
		},
	}
	detail := &model.Report{
		ID:          "101",
		Description: "Light out for a week",
		Coordinates: &model.Coordinates{Lat: 12.9, Lng: 77.6},
		Timeline:    []model.TimelineEntry{{Status: "PENDING", Note: "Submitted"}},
	}

	got := Reports(summary, detail)
	require.Equal(t, "Broken streetlight", got.Title)
	require.Equal(t, model.PriorityHigh, got.Priority)
	require.Equal(t, model.ReportStatusInProgress, got.Status)
	require.Equal(t, "Electrical", got.Department)
	require.Equal(t, "Light out for a week", got.Description)
	require.Equal(t, &model.Coordinates{Lat: 12.9, Lng: 77.6}, got.Coordinates)
	require.Len(t, got.Timeline, 1)
	require.Len(t, got.Attachments, 1)
	require.True(t, got.CreatedAt.Equal(created))

	require.Empty(t, summary.Description, "summary mutated")
}

func TestReports_DetailWins(t *testing.T) {
	summary := &model.Report{ID: "7", Status: model.ReportStatusPending}
	detail := &model.Report{ID: "7", Status: model.ReportStatusResolved}
	require.Equal(t, model.ReportStatusResolved, Reports(summary, detail).Status)
}

func TestReports_Nil(t *testing.T) {
	r := &model.Report{ID: "1"}
	require.Equal(t, r, Reports(nil, r))
	require.Equal(t, r, Reports(r, nil))
	require.Equal(t, &model.Report{}, Reports(nil, nil))
}

func TestSettings(t *testing.T) {
	current := model.Settings{
		"notifications": {"email": true, "sms": false},
		"profile":       {"name": "Alice", "phone": "555"},
	}
	updated := model.Settings{
		"profile": {"phone": "777", "name": ""},
	}

	got := Settings(current, updated)
	require.Equal(t, model.Settings{
		"notifications": {"email": true, "sms": false},
		"profile":       {"name": "Alice", "phone": "777"},
	}, got)
	require.Equal(t, "555", current["profile"]["phone"])
}
