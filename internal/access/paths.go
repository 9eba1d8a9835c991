// Package access decides, for a principal and a route path, whether the
// console may show the view or must redirect elsewhere.
package access

// Route paths of the console views.
const (
	PathLogin             = "/login"
	PathRoot              = "/"
	PathDashboard         = "/dashboard"
	PathAnalytics         = "/dashboard/analytics"
	PathReportsAssigned   = "/reports/assigned"
	PathReportsPending    = "/reports/pending"
	PathReportsInProgress = "/reports/in-progress"
	PathReportsResolved   = "/reports/resolved"
	PathDepartments       = "/departments"
	PathOperators         = "/operators"
	PathSettings          = "/settings"
	PathNotifications     = "/notifications"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

var reportLists = []NavItem{
	{Name: "Pending Reports", Path: PathReportsPending},
	{Name: "In Progress Reports", Path: PathReportsInProgress},
	{Name: "Resolved Reports", Path: PathReportsResolved},
}
