package reconcile

import (
	"encoding/json"

	"github.com/me/civicflow/pkg/model"
)

// Reports reconciles a report summary held from a list view with its freshly
// fetched detail. Fields the detail leaves empty keep the summary's value.
func Reports(summary, detail *model.Report) *model.Report {
	switch {
	case summary == nil && detail == nil:
		return &model.Report{}
	case summary == nil:
		r := *detail
		return &r
	case detail == nil:
		r := *summary
		return &r
	}

	o, err := project(summary)
	if err != nil {
		r := *detail
		return &r
	}
	u, err := project(detail)
	if err != nil {
		r := *summary
		return &r
	}

	var out model.Report
	data, err := json.Marshal(Merge(o, u))
	if err == nil {
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		r := *summary
		return &r
	}
	return &out
}

// Settings deep-merges an update into the current settings document, so a
// partial section update keeps the section's other values.
func Settings(current, updated model.Settings) model.Settings {
	var o, u map[string]any
	if current != nil {
		o = current.AsMap()
	}
	if updated != nil {
		u = updated.AsMap()
	}
	return model.SettingsFromMap(MergeDeep(o, u))
}

// project returns the JSON object form of v; omitted fields are absent keys.
func project(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
