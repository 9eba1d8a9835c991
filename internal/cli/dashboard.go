package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/pkg/model"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard",
		Long: `Show the dashboard. Admins see platform statistics, charts, recent
activity, and department workload; department heads see their department
and its reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathDashboard); err != nil {
				return err
			}
			dash, err := app.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, dash, func(w io.Writer) error {
				if dash.Department != nil {
					writeDepartment(w, dash.Department)
					fmt.Fprintln(w)
					writeReports(w, dash.Reports)
					return nil
				}
				writeStats(w, dash.Stats)
				if dash.Charts != nil && len(dash.Charts.PieData) > 0 {
					fmt.Fprintln(w)
					row(w, "STATUS", "REPORTS")
					for _, p := range dash.Charts.PieData {
						row(w, p["name"], p["value"])
					}
				}
				if dash.Workload != nil && len(dash.Workload.Workload) > 0 {
					fmt.Fprintln(w)
					row(w, "DEPARTMENT", "ACTIVE", "PENDING", "RESOLVED")
					for _, wl := range dash.Workload.Workload {
						row(w, wl.Department, wl.Active, wl.Pending, wl.Resolved)
					}
				}
				if len(dash.Activity) > 0 {
					fmt.Fprintln(w)
					row(w, "RECENT ACTIVITY")
					for _, a := range dash.Activity {
						row(w, activityLine(a))
					}
				}
				return nil
			})
		},
	}
}

// writeStats prints counters sorted by name.
func writeStats(w io.Writer, stats map[string]any) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if f, ok := stats[k].(float64); ok && f == float64(int64(f)) {
			row(w, k, humanize.Comma(int64(f)))
			continue
		}
		row(w, k, stats[k])
	}
}

func activityLine(a model.Activity) string {
	for _, k := range []string{"message", "description", "action", "title"} {
		if s, ok := a[k].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprint(map[string]any(a))
}
