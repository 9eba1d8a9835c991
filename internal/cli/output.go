package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/me/civicflow/internal/access"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json, or yaml)", format)
}

// render writes v in the selected output format. table draws the human
// view and is only called for the table format.
func render(cmd *cobra.Command, v any, table func(w io.Writer) error) error {
	out := cmd.OutOrStdout()
	switch flagOutput {
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case outputYAML:
		// Go through JSON so YAML keys match the API's field names.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if err := table(tw); err != nil {
		return err
	}
	return tw.Flush()
}

// row writes one tab-separated table row.
func row(w io.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func ago(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return humanize.Time(*t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RedirectError reports a view the current user may not open.
type RedirectError struct {
	Path     string
	Redirect string
}

func (e *RedirectError) Error() string {
	if e.Redirect == access.PathLogin {
		return fmt.Sprintf("%s requires a signed-in user (redirected to %s); run 'civicflow login'", e.Path, e.Redirect)
	}
	return fmt.Sprintf("%s is not available to your role (redirected to %s)", e.Path, e.Redirect)
}

// route runs a navigation through the access rules before any data for
// the view is fetched.
func route(path string) error {
	d := app.Navigate(path)
	if !d.Permit {
		return &RedirectError{Path: path, Redirect: d.Redirect}
	}
	return nil
}
