package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadString writes the YAML to a temp file and loads it.
func loadString(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Load(path)
}

func TestLoad_ValidFile(t *testing.T) {
	cfg, err := loadString(t, `
name: dashboard-check
description: "Dashboard renders the map for an admin"
target_url: http://localhost:5173

permissions:
  grants: [geolocation]

geolocation:
  latitude: 20.5937
  longitude: 78.9629

steps:
  - select:
      label: Admin
  - fill:
      placeholder: Password
      value: password
  - click:
      role: button
      name: Login
  - wait:
      selector: .leaflet-container
      timeout: 8s

screenshot:
  path: dashboard.png
`)
	require.NoError(t, err)

	assert.Equal(t, "dashboard-check", cfg.Name)
	assert.Equal(t, "Dashboard renders the map for an admin", cfg.Description)
	assert.Equal(t, "http://localhost:5173", cfg.TargetURL)

	require.NotNil(t, cfg.Permissions)
	assert.Equal(t, []string{"geolocation"}, cfg.Permissions.Grants)

	require.NotNil(t, cfg.Geolocation)
	assert.Equal(t, 20.5937, cfg.Geolocation.Latitude)
	assert.Equal(t, 78.9629, cfg.Geolocation.Longitude)

	require.Len(t, cfg.Steps, 4)
	require.NotNil(t, cfg.Steps[0].Select)
	assert.Equal(t, "Admin", cfg.Steps[0].Select.Label)
	require.NotNil(t, cfg.Steps[1].Fill)
	require.NotNil(t, cfg.Steps[1].Fill.Value)
	assert.Equal(t, "password", *cfg.Steps[1].Fill.Value)
	require.NotNil(t, cfg.Steps[2].Click)
	assert.Equal(t, "button", cfg.Steps[2].Click.Role)
	assert.Equal(t, "Login", cfg.Steps[2].Click.Name)
	require.NotNil(t, cfg.Steps[3].Wait)
	assert.Equal(t, ".leaflet-container", cfg.Steps[3].Wait.Selector)
	assert.Equal(t, 8*time.Second, time.Duration(cfg.Steps[3].Wait.Timeout))

	assert.Equal(t, "dashboard.png", cfg.Screenshot.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := loadString(t, `
name: typo
description: "Unknown top-level key must be rejected"
target_url: http://localhost:5173
browser: firefox
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario YAML")
}

func TestLoad_MissingName(t *testing.T) {
	_, err := loadString(t, `
description: "No name"
target_url: http://localhost:5173
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoad_MissingDescription(t *testing.T) {
	_, err := loadString(t, `
name: no-description
target_url: http://localhost:5173
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestLoad_MissingTargetURL(t *testing.T) {
	_, err := loadString(t, `
name: no-target
description: "No target URL"
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target_url is required")
}

func TestLoad_RelativeTargetURL(t *testing.T) {
	_, err := loadString(t, `
name: relative-target
description: "Target must be absolute"
target_url: localhost:5173/dashboard
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an absolute URL")
}

func TestLoad_NoSteps(t *testing.T) {
	_, err := loadString(t, `
name: no-steps
description: "Steps must be present"
target_url: http://localhost:5173
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps list is required")
}

func TestLoad_EmptyStep(t *testing.T) {
	_, err := loadString(t, `
name: empty-step
description: "A step with no kind is invalid"
target_url: http://localhost:5173
steps:
  - {}
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]: one of select, fill, click, wait is required")
}

func TestLoad_TwoKindsInOneStep(t *testing.T) {
	_, err := loadString(t, `
name: two-kinds
description: "A step may carry only one kind"
target_url: http://localhost:5173
steps:
  - click:
      role: button
      name: Login
    wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]: exactly one step kind may be set")
}

func TestLoad_WaitSelectorAndText(t *testing.T) {
	_, err := loadString(t, `
name: wait-both
description: "Selector and text cannot both be set"
target_url: http://localhost:5173
steps:
  - wait:
      selector: .map
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selector and text are mutually exclusive")
}

func TestLoad_WaitNeitherSelectorNorText(t *testing.T) {
	_, err := loadString(t, `
name: wait-neither
description: "A wait needs a condition"
target_url: http://localhost:5173
steps:
  - wait:
      timeout: 5s
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0].wait: selector or text is required")
}

func TestLoad_FillWithoutValue(t *testing.T) {
	_, err := loadString(t, `
name: fill-no-value
description: "Fill needs an explicit value"
target_url: http://localhost:5173
steps:
  - fill:
      placeholder: Password
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0].fill: value is required")
}

func TestLoad_FillEmptyValueIsAllowed(t *testing.T) {
	cfg, err := loadString(t, `
name: fill-empty
description: "An explicit empty string clears the field"
target_url: http://localhost:5173
steps:
  - fill:
      placeholder: Password
      value: ""
screenshot:
  path: out.png
`)
	require.NoError(t, err)
	require.NotNil(t, cfg.Steps[0].Fill.Value)
	assert.Equal(t, "", *cfg.Steps[0].Fill.Value)
}

func TestLoad_UnknownGrant(t *testing.T) {
	_, err := loadString(t, `
name: bad-grant
description: "Grants are checked against the known capability names"
target_url: http://localhost:5173
permissions:
  grants: [telepathy]
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown grant "telepathy"`)

	var perr *PermissionsError
	assert.True(t, errors.As(err, &perr), "grant failures carry their own type")
}

func TestLoad_DuplicateGrant(t *testing.T) {
	_, err := loadString(t, `
name: dup-grant
description: "The same grant twice is a config mistake"
target_url: http://localhost:5173
permissions:
  grants: [geolocation, geolocation]
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate grant "geolocation"`)

	var perr *PermissionsError
	assert.True(t, errors.As(err, &perr), "grant failures carry their own type")
}

func TestLoad_LatitudeOutOfRange(t *testing.T) {
	_, err := loadString(t, `
name: bad-latitude
description: "Latitude is bounded"
target_url: http://localhost:5173
geolocation:
  latitude: 93.2
  longitude: 10
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude 93.2 out of range")
}

func TestLoad_LongitudeOutOfRange(t *testing.T) {
	_, err := loadString(t, `
name: bad-longitude
description: "Longitude is bounded"
target_url: http://localhost:5173
geolocation:
  latitude: 10
  longitude: -180.5
steps:
  - wait:
      text: ready
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude -180.5 out of range")
}

func TestLoad_MissingScreenshotPath(t *testing.T) {
	_, err := loadString(t, `
name: no-screenshot
description: "Screenshot path is required"
target_url: http://localhost:5173
steps:
  - wait:
      text: ready
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screenshot: path is required")
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := loadString(t, `
name: bad-duration
description: "Timeouts must parse as durations"
target_url: http://localhost:5173
steps:
  - wait:
      text: ready
      timeout: soonish
screenshot:
  path: out.png
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid duration "soonish"`)
}

func TestOrigin(t *testing.T) {
	cfg := &Config{TargetURL: "http://localhost:5173/dashboard?tab=map"}
	got, err := cfg.Origin()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", got)

	cfg = &Config{TargetURL: "https://grid.example.com/login"}
	got, err = cfg.Origin()
	require.NoError(t, err)
	assert.Equal(t, "https://grid.example.com", got)
}

func TestWaitDeadline(t *testing.T) {
	w := &WaitStep{Timeout: Duration(250 * time.Millisecond)}
	assert.Equal(t, 250*time.Millisecond, w.Deadline(30*time.Second))

	w = &WaitStep{}
	assert.Equal(t, 30*time.Second, w.Deadline(30*time.Second))
}

func TestSelectControlRole(t *testing.T) {
	s := &SelectStep{Label: "Admin"}
	assert.Equal(t, "combobox", s.ControlRole())

	s = &SelectStep{Label: "Admin", Role: "listbox"}
	assert.Equal(t, "listbox", s.ControlRole())
}

func TestStepDescribe(t *testing.T) {
	password := "hunter2"

	step := Step{Select: &SelectStep{Label: "Admin"}}
	assert.Equal(t, `select option "Admin"`, step.Describe())

	step = Step{Select: &SelectStep{Label: "Admin", Name: "Role"}}
	assert.Equal(t, `select option "Admin" in "Role"`, step.Describe())

	step = Step{Fill: &FillStep{Placeholder: "Password", Value: &password}}
	assert.Equal(t, `fill "Password"`, step.Describe(), "values must never leak into logs")

	step = Step{Click: &ClickStep{Role: "button", Name: "Login"}}
	assert.Equal(t, `click button "Login"`, step.Describe())

	step = Step{Wait: &WaitStep{Selector: ".leaflet-container"}}
	assert.Equal(t, `wait for selector ".leaflet-container"`, step.Describe())

	step = Step{Wait: &WaitStep{Text: "Location Access Required"}}
	assert.Equal(t, `wait for text "Location Access Required"`, step.Describe())
}
