package api

import (
	"context"

	"github.com/me/civicflow/pkg/model"
)

// builtinNotifications is served while the backend has no notification
// endpoint.
var builtinNotifications = []model.Notification{
	{
		ID:       "N001",
		Type:     "high",
		Title:    "New High-Priority Report: Illegal Dumping",
		Message:  "A citizen reported illegal dumping of hazardous waste at Elm Street Park. Requires immediate attention.",
		Time:     "5 minutes ago",
		Status:   "new",
		Category: "report",
	},
}

// Notifications returns the notification feed.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Notification, len(builtinNotifications))
	copy(out, builtinNotifications)
	return out, nil
}
