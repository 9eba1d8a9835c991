package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/me/civicflow/internal/access"
)

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show platform analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathAnalytics); err != nil {
				return err
			}
			a, err := app.Analytics(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, a, func(w io.Writer) error {
				writeStats(w, a.Stats)
				if a.Charts != nil && len(a.Charts.ResponseTime) > 0 {
					fmt.Fprintln(w)
					row(w, "CATEGORY", "MEAN RESPONSE")
					for _, rt := range a.Charts.ResponseTime {
						row(w, rt.Name, rt.Time)
					}
				}
				if len(a.Hotspots) > 0 {
					fmt.Fprintln(w)
					row(w, "HOTSPOT", "LOCATION", "REPORTS")
					for _, h := range a.Hotspots {
						row(w, h.Name, h.Location, h.Reports)
					}
				}
				return nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Request an analytics export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathAnalytics); err != nil {
				return err
			}
			res, err := app.API.ExportAnalytics(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, res, func(w io.Writer) error {
				writeStats(w, res)
				return nil
			})
		},
	})
	return cmd
}
