package model

// DefaultSettings returns the settings the console assumes when the backend
// omits a value.
func DefaultSettings() Settings {
	return Settings{
		"notifications": {
			"newReportEmail":    true,
			"statusUpdateEmail": true,
			"deadlineReminders": true,
			"emailAlerts":       true,
			"smsAlerts":         false,
			"pushNotifications": true,
		},
		"profile": {
			"fullName":     "",
			"jobTitle":     "",
			"contactEmail": "",
			"phoneNumber":  "",
			"address":      "",
		},
		"preferences": {
			"timezone": "UTC (Coordinated Universal Time)",
			"language": "English (US)",
			"darkMode": false,
			"clock24h": false,
			"theme":    "light",
			"showTips": true,
		},
		"system": {
			"auditLogs":             true,
			"userManagement":        true,
			"defaultReportPriority": "Medium",
		},
	}
}

// AsMap returns the settings as a generic JSON object.
func (s Settings) AsMap() map[string]any {
	out := make(map[string]any, len(s))
	for section, values := range s {
		m := make(map[string]any, len(values))
		for k, v := range values {
			m[k] = v
		}
		out[section] = m
	}
	return out
}

// SettingsFromMap converts a generic JSON object into Settings, dropping
// top-level entries that are not sections.
func SettingsFromMap(m map[string]any) Settings {
	out := make(Settings, len(m))
	for section, v := range m {
		values, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out[section] = values
	}
	return out
}
