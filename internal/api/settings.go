package api

import (
	"context"
	"net/http"

	"github.com/me/civicflow/internal/reconcile"
	"github.com/me/civicflow/pkg/model"
)

// writableSections are the settings sections the server accepts on update.
var writableSections = []string{"profile", "preferences", "notifications"}

// Settings fetches the user's settings, filling anything the server leaves
// out with the console defaults.
func (c *Client) Settings(ctx context.Context) (model.Settings, error) {
	var raw map[string]any
	if err := c.get(ctx, "fetch settings", "/api/settings", &raw); err != nil {
		return nil, err
	}
	return reconcile.Settings(model.DefaultSettings(), model.SettingsFromMap(raw)), nil
}

type settingsUpdateResponse struct {
	UpdatedSettings map[string]any `json:"updatedSettings"`
}

// UpdateSettings saves the writable sections of s and returns the settings
// now in effect.
func (c *Client) UpdateSettings(ctx context.Context, s model.Settings) (model.Settings, error) {
	body := make(model.Settings, len(writableSections))
	for _, section := range writableSections {
		if values, ok := s[section]; ok {
			body[section] = values
		}
	}

	var resp settingsUpdateResponse
	if err := c.do(ctx, "update settings", http.MethodPut, "/api/settings", body, &resp); err != nil {
		return nil, err
	}
	if resp.UpdatedSettings != nil {
		return reconcile.Settings(model.DefaultSettings(), model.SettingsFromMap(resp.UpdatedSettings)), nil
	}
	return reconcile.Settings(model.DefaultSettings(), s), nil
}
