package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/civicflow/internal/access"
)

func newNavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "List the views available to the signed-in role",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := app.Navigation()
			if len(items) == 0 {
				return &RedirectError{Path: "nav", Redirect: access.PathLogin}
			}
			return render(cmd, items, func(w io.Writer) error {
				row(w, "VIEW", "PATH")
				for _, it := range items {
					row(w, it.Name, it.Path)
				}
				return nil
			})
		},
	}
}

type openResult struct {
	Path     string `json:"path"`
	Permit   bool   `json:"permit"`
	Redirect string `json:"redirect,omitempty"`
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Show where navigating to a route path would land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			d := app.Navigate(path)
			res := openResult{Path: path, Permit: d.Permit, Redirect: d.Redirect}
			return render(cmd, res, func(w io.Writer) error {
				if d.Permit {
					row(w, path, "allowed")
				} else {
					row(w, path, "redirect", d.Redirect)
				}
				return nil
			})
		},
	}
}
