package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/pkg/model"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathSettings); err != nil {
				return err
			}
			s, err := app.API.Settings(cmd.Context())
			if err != nil {
				return err
			}
			return renderSettings(cmd, s)
		},
	}
	cmd.AddCommand(newSettingsUpdateCmd())
	return cmd
}

func newSettingsUpdateCmd() *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update --set section.key=value ...",
		Short: "Change settings",
		Long: `Change settings. Each --set names a section (profile, preferences,
notifications) and key; values are read as YAML scalars, so true, 30, and
"text" keep their types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathSettings); err != nil {
				return err
			}
			update, err := parseSettings(sets)
			if err != nil {
				return err
			}
			s, err := app.API.UpdateSettings(cmd.Context(), update)
			if err != nil {
				return err
			}
			return renderSettings(cmd, s)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "section.key=value (repeatable)")
	return cmd
}

// parseSettings builds a partial settings document from section.key=value
// assignments.
func parseSettings(sets []string) (model.Settings, error) {
	if len(sets) == 0 {
		return nil, model.Required("update settings", "set")
	}
	out := model.Settings{}
	for _, s := range sets {
		path, raw, ok := strings.Cut(s, "=")
		section, key, okKey := strings.Cut(path, ".")
		if !ok || !okKey || section == "" || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want section.key=value", s)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", s, err)
		}
		if v == nil {
			v = ""
		}
		if out[section] == nil {
			out[section] = map[string]any{}
		}
		out[section][key] = v
	}
	return out, nil
}

func renderSettings(cmd *cobra.Command, s model.Settings) error {
	return render(cmd, s, func(w io.Writer) error {
		sections := make([]string, 0, len(s))
		for k := range s {
			sections = append(sections, k)
		}
		sort.Strings(sections)
		row(w, "SETTING", "VALUE")
		for _, sec := range sections {
			keys := make([]string, 0, len(s[sec]))
			for k := range s[sec] {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				row(w, sec+"."+k, s[sec][k])
			}
		}
		return nil
	})
}

func newNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show your notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathNotifications); err != nil {
				return err
			}
			items, err := app.API.Notifications(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, items, func(w io.Writer) error {
				if len(items) == 0 {
					fmt.Fprintln(w, "No notifications.")
					return nil
				}
				row(w, "ID", "TYPE", "STATUS", "WHEN", "TITLE")
				for _, n := range items {
					row(w, n.ID, n.Type, n.Status, n.Time, n.Title)
				}
				return nil
			})
		},
	}
}
