package model

import "strings"

// ReportStatus is the backend lifecycle state of a citizen report.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "PENDING"
	ReportStatusInProgress ReportStatus = "IN_PROGRESS"
	ReportStatusResolved   ReportStatus = "RESOLVED"
	ReportStatusRejected   ReportStatus = "REJECTED"
)

// String returns the backend enum value.
func (s ReportStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further work is expected on the report.
func (s ReportStatus) IsTerminal() bool {
	switch s {
	case ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

// Label returns the human-readable name of the status.
func (s ReportStatus) Label() string {
	switch s {
	case ReportStatusPending:
		return "Pending"
	case ReportStatusInProgress:
		return "In Progress"
	case ReportStatusResolved:
		return "Resolved"
	case ReportStatusRejected:
		return "Rejected"
	}
	return string(s)
}

// ParseReportStatus maps a UI status value (pending, in-progress, resolved,
// rejected; any case) to its backend enum. Unknown values are upper-cased.
func ParseReportStatus(s string) ReportStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return ReportStatusPending
	case "in-progress":
		return ReportStatusInProgress
	case "resolved":
		return ReportStatusResolved
	case "rejected":
		return ReportStatusRejected
	}
	return ReportStatus(strings.ToUpper(strings.TrimSpace(s)))
}

// Priority is the urgency attached to a report.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// String returns the priority value.
func (p Priority) String() string {
	return string(p)
}
