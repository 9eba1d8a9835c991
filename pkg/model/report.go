package model

import (
	"strings"
	"time"
)

// Report is the canonical record for a citizen-submitted issue.
//
// List and detail endpoints return differently shaped payloads for the same
// report; NormalizeReport folds both into this one type. Zero-valued fields
// mean "not known from this payload" and are omitted from JSON so that
// reconciliation can tell absence from a real value.
type Report struct {
	ID           string          `json:"id,omitempty"`
	Title        string          `json:"title,omitempty"`
	Description  string          `json:"description,omitempty"`
	Address      string          `json:"address,omitempty"`
	Coordinates  *Coordinates    `json:"coordinates,omitempty"`
	PhotoURL     string          `json:"photoUrl,omitempty"`
	VoiceURL     string          `json:"voiceUrl,omitempty"`
	Attachments  []Attachment    `json:"attachments,omitempty"`
	Priority     Priority        `json:"priority,omitempty"`
	Status       ReportStatus    `json:"status,omitempty"`
	Department   string          `json:"department,omitempty"`
	DepartmentID string          `json:"departmentId,omitempty"`
	AssignedTo   string          `json:"assignedTo,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
	AssignedAt   *time.Time      `json:"assignedDate,omitempty"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	ResolvedAt   *time.Time      `json:"resolvedAt,omitempty"`
	Timeline     []TimelineEntry `json:"timeline,omitempty"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Attachment is a media file uploaded with a report.
type Attachment struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"` // image, audio, ...
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}

// TimelineEntry is one step in a report's history.
type TimelineEntry struct {
	Status string     `json:"status,omitempty"`
	Note   string     `json:"note,omitempty"`
	By     string     `json:"by,omitempty"`
	At     *time.Time `json:"at,omitempty"`
}

// DisplayPriority returns the priority, defaulting to MEDIUM when unknown.
func (r *Report) DisplayPriority() Priority {
	if r.Priority == "" {
		return PriorityMedium
	}
	return r.Priority
}

// DisplayStatus returns the status, defaulting to PENDING when unknown.
func (r *Report) DisplayStatus() ReportStatus {
	if r.Status == "" {
		return ReportStatusPending
	}
	return r.Status
}

// StripReportID removes a single leading "R" from a UI-facing report id so
// it can be sent back to the server.
func StripReportID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "R")
}

// NormalizeReport converts a raw report payload from any endpoint into a
// Report. Aliased field names are resolved in one place here.
func NormalizeReport(raw map[string]any) Report {
	if raw == nil {
		return Report{}
	}
	r := Report{
		ID:           stringID(raw["id"]),
		Title:        str(raw["title"]),
		Description:  str(raw["description"]),
		Address:      firstString(raw["address"], raw["location"]),
		Attachments:  attachments(raw["attachments"]),
		Priority:     Priority(strings.ToUpper(str(raw["priority"]))),
		Status:       ReportStatus(strings.ToUpper(str(raw["status"]))),
		Department:   firstString(raw["department"], raw["assignedToDepartment"], raw["departmentName"]),
		DepartmentID: stringID(raw["departmentId"]),
		AssignedTo:   person(raw["assignedTo"]),
		CreatedAt:    firstTime(raw["createdAt"], raw["dateReported"], raw["submittedDate"]),
		AssignedAt:   firstTime(raw["assignedDate"], raw["assignedAt"]),
		DueDate:      firstTime(raw["dueDate"], raw["estimatedResolution"]),
		ResolvedAt:   firstTime(raw["resolvedAt"], raw["dateResolved"]),
		Timeline:     timeline(raw["timeline"]),
	}
	r.Coordinates = coordinates(raw)

	for _, a := range r.Attachments {
		switch {
		case a.Type == "image" && r.PhotoURL == "":
			r.PhotoURL = a.URL
		case a.Type == "audio" && r.VoiceURL == "":
			r.VoiceURL = a.URL
		}
	}
	if r.PhotoURL == "" {
		r.PhotoURL = str(raw["photoUrl"])
	}
	if r.VoiceURL == "" {
		r.VoiceURL = str(raw["voiceUrl"])
	}
	return r
}

// NormalizeReports normalizes a list payload.
func NormalizeReports(raw []map[string]any) []Report {
	out := make([]Report, 0, len(raw))
	for _, m := range raw {
		out = append(out, NormalizeReport(m))
	}
	return out
}

func coordinates(raw map[string]any) *Coordinates {
	if m, ok := raw["coordinates"].(map[string]any); ok {
		lat, okLat := num(m["lat"])
		lng, okLng := num(m["lng"])
		if okLat && okLng {
			return &Coordinates{Lat: lat, Lng: lng}
		}
	}
	lat, okLat := num(raw["latitude"])
	lng, okLng := num(raw["longitude"])
	if okLat && okLng {
		return &Coordinates{Lat: lat, Lng: lng}
	}
	if m, ok := raw["location"].(map[string]any); ok {
		lat, okLat := num(m["latitude"])
		lng, okLng := num(m["longitude"])
		if okLat && okLng {
			return &Coordinates{Lat: lat, Lng: lng}
		}
	}
	return nil
}

func attachments(v any) []Attachment {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]Attachment, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Attachment{
			ID:   stringID(m["id"]),
			Type: strings.ToLower(str(m["type"])),
			URL:  str(m["url"]),
			Name: firstString(m["name"], m["fileName"]),
		})
	}
	return out
}

func timeline(v any) []TimelineEntry {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]TimelineEntry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, TimelineEntry{
			Status: strings.ToUpper(str(m["status"])),
			Note:   firstString(m["note"], m["description"], m["message"]),
			By:     person(firstNonNil(m["by"], m["updatedBy"], m["user"])),
			At:     firstTime(m["timestamp"], m["date"], m["at"], m["createdAt"]),
		})
	}
	return out
}

// person renders a reference to a user that may be an id, a name, or an
// object carrying either.
func person(v any) string {
	if m, ok := v.(map[string]any); ok {
		if name := firstString(m["name"], m["fullName"], m["operatorName"]); name != "" {
			return name
		}
		return stringID(m["id"])
	}
	return stringID(v)
}

func firstNonNil(vs ...any) any {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func firstString(vs ...any) string {
	for _, v := range vs {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func num(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// timeLayouts are the timestamp shapes the backend has been seen to emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func firstTime(vs ...any) *time.Time {
	for _, v := range vs {
		if t := parseTime(v); t != nil {
			return t
		}
	}
	return nil
}

func parseTime(v any) *time.Time {
	switch tv := v.(type) {
	case string:
		if tv == "" {
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, tv); err == nil {
				return &t
			}
		}
	case float64:
		// epoch milliseconds
		t := time.UnixMilli(int64(tv)).UTC()
		return &t
	}
	return nil
}
