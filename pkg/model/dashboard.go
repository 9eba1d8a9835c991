package model

// DashboardStats is the headline counter block of the dashboard.
type DashboardStats map[string]any

// ChartPoint is one labelled value in a chart series.
type ChartPoint map[string]any

// ChartData holds the dashboard's pie and line series.
type ChartData struct {
	PieData  []ChartPoint `json:"pieData"`
	LineData []ChartPoint `json:"lineData"`
}

// NormalizeChartData renames the "in-progress" pie slice for display and
// replaces missing series with empty ones.
func NormalizeChartData(c ChartData) ChartData {
	out := ChartData{
		PieData:  make([]ChartPoint, 0, len(c.PieData)),
		LineData: c.LineData,
	}
	for _, p := range c.PieData {
		cp := make(ChartPoint, len(p))
		for k, v := range p {
			cp[k] = v
		}
		if cp["name"] == "in-progress" {
			cp["name"] = "In Progress"
		}
		out.PieData = append(out.PieData, cp)
	}
	if out.LineData == nil {
		out.LineData = []ChartPoint{}
	}
	return out
}

// Activity is an entry in the recent-activity feed.
type Activity map[string]any

// WorkloadEntry is one department's share of open work.
type WorkloadEntry struct {
	Department string `json:"department"`
	Active     int    `json:"active"`
	Pending    int    `json:"pending"`
	Resolved   int    `json:"resolved"`
}

// DepartmentData is the department-workload panel.
type DepartmentData struct {
	Workload []WorkloadEntry `json:"departmentWorkload"`
}

// Normalize fills unnamed departments.
func (d DepartmentData) Normalize() DepartmentData {
	out := DepartmentData{Workload: make([]WorkloadEntry, 0, len(d.Workload))}
	for _, w := range d.Workload {
		if w.Department == "" {
			w.Department = "Unknown Department"
		}
		out.Workload = append(out.Workload, w)
	}
	return out
}

// Dashboard is the combined result of the dashboard's grouped fetch.
// Admin and operator dashboards fill the first four fields; department
// heads get their own department and its reports instead.
type Dashboard struct {
	Stats      DashboardStats  `json:"stats,omitempty"`
	Charts     *ChartData      `json:"charts,omitempty"`
	Activity   []Activity      `json:"activity,omitempty"`
	Workload   *DepartmentData `json:"workload,omitempty"`
	Department *Department     `json:"department,omitempty"`
	Reports    []Report        `json:"reports,omitempty"`
}

// AnalyticsChartData holds the analytics page series.
type AnalyticsChartData struct {
	ReportVolume    []ChartPoint   `json:"reportVolumeData"`
	IssueCategories []ChartPoint   `json:"issueCategoriesData"`
	ResponseTime    []ResponseTime `json:"responseTimeData"`
}

// ResponseTime is the mean response time for one category.
type ResponseTime struct {
	Name string  `json:"name"`
	Time float64 `json:"time"`
}

// Hotspot is a location with a concentration of reports.
type Hotspot struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Reports  int    `json:"reports"`
	Color    string `json:"color"`
}

// Normalize fills hotspot defaults.
func (h Hotspot) Normalize() Hotspot {
	if h.Name == "" {
		h.Name = "Unknown Location"
	}
	if h.Location == "" {
		h.Location = h.Name
	}
	if h.Color == "" {
		h.Color = "#10b981"
	}
	return h
}

// Notification is an item in the console's notification feed.
type Notification struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// Settings is the user's settings document: sections (notifications,
// profile, preferences, system) of loosely typed values.
type Settings map[string]map[string]any
