package scenario

// defaultTarget is the address the application under test serves on.
const defaultTarget = "http://localhost:5173"

// Builtins returns the shipped scenario configurations in a stable
// order. Each call returns fresh copies so callers can adjust them.
func Builtins() []*Config {
	return []*Config{
		permissionDenied(),
		locationDashboard(),
		locationFlowDenied(),
	}
}

// Builtin resolves a shipped scenario by name.
func Builtin(name string) (*Config, bool) {
	for _, cfg := range Builtins() {
		if cfg.Name == name {
			return cfg, true
		}
	}
	return nil, false
}

func permissionDenied() *Config {
	return &Config{
		Name:        "permission-denied",
		Description: "Location access prompt is surfaced when no geolocation grant is present",
		TargetURL:   defaultTarget,
		Steps: []Step{
			{Wait: &WaitStep{Text: "Location Access Required"}},
		},
		Screenshot: Screenshot{Path: "permission_denied.png"},
	}
}

func locationDashboard() *Config {
	password := "password"
	return &Config{
		Name:        "location-dashboard",
		Description: "Granted geolocation shows the live map on the locations dashboard",
		TargetURL:   defaultTarget,
		Permissions: &Permissions{Grants: []string{"geolocation"}},
		Geolocation: &Geolocation{Latitude: 20.5937, Longitude: 78.9629},
		Steps: []Step{
			{Select: &SelectStep{Label: "Admin"}},
			{Fill: &FillStep{Placeholder: "Password", Value: &password}},
			{Click: &ClickStep{Role: "button", Name: "Login"}},
			{Click: &ClickStep{Role: "button", Name: "Management"}},
			{Click: &ClickStep{Role: "button", Name: "📍 Locations"}},
			{Wait: &WaitStep{Selector: ".leaflet-container"}},
		},
		Screenshot: Screenshot{Path: "location_dashboard.png"},
	}
}

func locationFlowDenied() *Config {
	password := "password"
	return &Config{
		Name:        "location-flow-denied",
		Description: "Revoked geolocation still allows login but keeps the access prompt visible",
		TargetURL:   defaultTarget,
		Permissions: &Permissions{Grants: []string{}},
		Steps: []Step{
			{Select: &SelectStep{Label: "Admin"}},
			{Fill: &FillStep{Placeholder: "Password", Value: &password}},
			{Click: &ClickStep{Role: "button", Name: "Login"}},
			{Wait: &WaitStep{Text: "Location Access Required"}},
		},
		Screenshot: Screenshot{Path: "permission_denied.png"},
	}
}
