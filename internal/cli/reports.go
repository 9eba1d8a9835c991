package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/civicflow/internal/api"
	"github.com/me/civicflow/internal/console"
	"github.com/me/civicflow/pkg/model"
)

var reportViews = []struct {
	view  string
	short string
}{
	{console.ViewAssigned, "List reports assigned to you"},
	{console.ViewPending, "List pending reports"},
	{console.ViewInProgress, "List reports in progress"},
	{console.ViewResolved, "List resolved reports"},
}

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse and act on citizen reports",
	}
	for _, v := range reportViews {
		cmd.AddCommand(newReportListCmd(v.view, v.short))
	}
	cmd.AddCommand(
		newReportShowCmd(),
		newReportStatusCmd(),
		newReportAssignCmd(),
		newReportExportCmd(),
	)
	return cmd
}

func reportsPath(view string) string {
	return "/reports/" + view
}

func newReportListCmd(view, short string) *cobra.Command {
	return &cobra.Command{
		Use:   view,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(reportsPath(view)); err != nil {
				return err
			}
			reports, err := app.Reports(cmd.Context(), view)
			if err != nil {
				return err
			}
			return render(cmd, reports, func(w io.Writer) error {
				writeReports(w, reports)
				return nil
			})
		},
	}
}

// resolveView returns view, or the list a report is normally opened from
// for the current role.
func resolveView(view string) string {
	if view != "" {
		return view
	}
	if app.Principal().Role == model.RoleOperator {
		return console.ViewAssigned
	}
	return console.ViewPending
}

func newReportShowCmd() *cobra.Command {
	var view string
	cmd := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Show a report with its full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view = resolveView(view)
			if err := route(reportsPath(view)); err != nil {
				return err
			}
			ctx := cmd.Context()
			reports, err := app.Reports(ctx, view)
			if err != nil {
				return err
			}
			summary := console.Find(reports, args[0])
			if summary == nil {
				logger.Debug("report not in list, loading details only", "id", args[0], "view", view)
				summary = &model.Report{ID: args[0]}
			}
			report, err := app.ReportDetails(ctx, summary)
			if err != nil {
				return err
			}
			return render(cmd, report, func(w io.Writer) error {
				writeReport(w, report)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "Report list the report belongs to (assigned, pending, in-progress, resolved)")
	return cmd
}

func newReportStatusCmd() *cobra.Command {
	var view string
	cmd := &cobra.Command{
		Use:   "status <report-id> <status>",
		Short: "Change the status of a report",
		Long:  "Change the status of a report to pending, in-progress, resolved, or rejected.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(reportsPath(resolveView(view))); err != nil {
				return err
			}
			res, err := app.API.UpdateReportStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) error {
				row(w, res.Message)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "Report list the change is made from")
	return cmd
}

func newReportAssignCmd() *cobra.Command {
	var a api.Assignment
	cmd := &cobra.Command{
		Use:   "assign <report-id>",
		Short: "Assign a report to an operator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(reportsPath(console.ViewPending)); err != nil {
				return err
			}
			a.ReportID = args[0]
			if a.DepartmentID == "" {
				if u := app.Session.CurrentUser(); u != nil && u.Role == model.RoleDepartmentHead {
					a.DepartmentID = u.DepartmentID
				}
			}
			res, err := app.API.AssignReport(cmd.Context(), a)
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) error {
				row(w, res.Message)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&a.DepartmentID, "department", "", "Department id (defaults to your own department)")
	cmd.Flags().StringVar(&a.AssignedTo, "operator", "", "Operator id to assign")
	return cmd
}

func newReportExportCmd() *cobra.Command {
	var view, format, out string
	cmd := &cobra.Command{
		Use:   "export <report-id>",
		Short: "Export a report to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(reportsPath(resolveView(view))); err != nil {
				return err
			}
			format = strings.ToLower(format)
			if out == "" {
				out = fmt.Sprintf("report-%s.%s", model.StripReportID(args[0]), format)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			exp, err := app.API.ExportReport(cmd.Context(), args[0], format, f)
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("write %s: %w", out, cerr)
			}
			if err != nil {
				os.Remove(out)
				return err
			}
			return render(cmd, exp, func(w io.Writer) error {
				row(w, exp.Message)
				row(w, "Saved", out, humanize.Bytes(uint64(exp.Bytes)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&view, "view", "", "Report list the export is made from")
	cmd.Flags().StringVar(&format, "format", "pdf", "Export format (pdf, csv, xlsx)")
	cmd.Flags().StringVarP(&out, "out", "f", "", "Output file (default report-<id>.<format>)")
	return cmd
}

func writeReports(w io.Writer, reports []model.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports found.")
		return
	}
	row(w, "ID", "TITLE", "PRIORITY", "STATUS", "DEPARTMENT", "REPORTED")
	for i := range reports {
		r := &reports[i]
		row(w, r.ID, orDash(r.Title), r.DisplayPriority(), r.DisplayStatus().Label(), orDash(r.Department), ago(r.CreatedAt))
	}
}

func writeReport(w io.Writer, r *model.Report) {
	row(w, "ID", r.ID)
	row(w, "TITLE", orDash(r.Title))
	row(w, "STATUS", r.DisplayStatus().Label())
	row(w, "PRIORITY", r.DisplayPriority())
	row(w, "DEPARTMENT", orDash(r.Department))
	row(w, "ASSIGNED TO", orDash(r.AssignedTo))
	row(w, "ADDRESS", orDash(r.Address))
	if r.Coordinates != nil {
		row(w, "LOCATION", fmt.Sprintf("%.6f, %.6f", r.Coordinates.Lat, r.Coordinates.Lng))
	}
	row(w, "REPORTED", ago(r.CreatedAt))
	if r.DueDate != nil {
		row(w, "DUE", ago(r.DueDate))
	}
	if r.ResolvedAt != nil {
		row(w, "RESOLVED", ago(r.ResolvedAt))
	}
	if r.PhotoURL != "" {
		row(w, "PHOTO", r.PhotoURL)
	}
	if r.VoiceURL != "" {
		row(w, "VOICE NOTE", r.VoiceURL)
	}
	if r.Description != "" {
		row(w, "DESCRIPTION", r.Description)
	}
	for _, t := range r.Timeline {
		row(w, "TIMELINE", ago(t.At), t.Status, orDash(t.Note), orDash(t.By))
	}
}
