// Package scenario defines the verification scenario model: the target
// application, the permission state of the browser context, and the
// ordered UI steps that lead up to the screenshot.
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"
)

// Config describes one verification scenario.
type Config struct {
	// Name uniquely identifies this scenario in run records and output.
	Name string `yaml:"name" json:"name"`

	// Description explains what the scenario verifies.
	Description string `yaml:"description" json:"description"`

	// TargetURL is the address of the running application under test.
	TargetURL string `yaml:"target_url" json:"target_url"`

	// Permissions configures capability grants for the browser context.
	// Nil leaves the browser at its defaults; a present but empty grant
	// list revokes everything for the origin.
	Permissions *Permissions `yaml:"permissions,omitempty" json:"permissions,omitempty"`

	// Geolocation fixes the coordinates pages observe. Only observable
	// when the geolocation capability is granted.
	Geolocation *Geolocation `yaml:"geolocation,omitempty" json:"geolocation,omitempty"`

	// Steps run strictly in order after the implicit navigation to
	// TargetURL.
	Steps []Step `yaml:"steps" json:"steps"`

	// Screenshot is captured full-page after the final step.
	Screenshot Screenshot `yaml:"screenshot" json:"screenshot"`
}

// Permissions lists capability grants scoped to the target origin.
type Permissions struct {
	Grants []string `yaml:"grants" json:"grants"`
}

// Geolocation is the simulated position for the session.
type Geolocation struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// Screenshot names the destination of the final capture.
type Screenshot struct {
	Path string `yaml:"path" json:"path"`
}

// Step is one UI interaction. Exactly one of the kind fields is set.
type Step struct {
	Select *SelectStep `yaml:"select,omitempty" json:"select,omitempty"`
	Fill   *FillStep   `yaml:"fill,omitempty" json:"fill,omitempty"`
	Click  *ClickStep  `yaml:"click,omitempty" json:"click,omitempty"`
	Wait   *WaitStep   `yaml:"wait,omitempty" json:"wait,omitempty"`
}

// SelectStep chooses an option from a choice control by its visible
// label. Role defaults to combobox; Name narrows to a specific control
// when a page has several.
type SelectStep struct {
	Label string `yaml:"label" json:"label"`
	Role  string `yaml:"role,omitempty" json:"role,omitempty"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
}

// ControlRole returns the accessible role of the choice control.
func (s *SelectStep) ControlRole() string {
	if s.Role != "" {
		return s.Role
	}
	return "combobox"
}

// FillStep types a literal value into the input identified by its
// placeholder text. Value is a pointer so an explicit empty string
// stays distinguishable from a missing field.
type FillStep struct {
	Placeholder string  `yaml:"placeholder" json:"placeholder"`
	Value       *string `yaml:"value" json:"value"`
}

// ClickStep presses the control identified by accessible role and
// visible name. The control must report an enabled state before the
// click is issued.
type ClickStep struct {
	Role string `yaml:"role" json:"role"`
	Name string `yaml:"name" json:"name"`
}

// WaitStep blocks until a condition holds: a CSS selector resolving to
// a visible element, or a piece of text becoming visible. Timeout
// overrides the run default for this wait only.
type WaitStep struct {
	Selector string   `yaml:"selector,omitempty" json:"selector,omitempty"`
	Text     string   `yaml:"text,omitempty" json:"text,omitempty"`
	Timeout  Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Deadline returns the wait's own timeout when set, fallback otherwise.
func (w *WaitStep) Deadline(fallback time.Duration) time.Duration {
	if w.Timeout > 0 {
		return time.Duration(w.Timeout)
	}
	return fallback
}

// Duration parses YAML and JSON duration strings such as "8s" or "1500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// knownGrants are the capability names the browser accepts for
// context-level grants. Unknown names fail validation up front instead
// of surfacing as a mid-run driver error.
var knownGrants = mapset.NewSet(
	"geolocation",
	"camera",
	"microphone",
	"notifications",
	"clipboard-read",
	"clipboard-write",
	"midi",
	"midi-sysex",
	"background-sync",
	"accelerometer",
	"gyroscope",
	"magnetometer",
	"ambient-light-sensor",
	"accessibility-events",
	"payment-handler",
	"storage-access",
)

// PermissionsError marks a grant list the browser cannot accept: an
// unknown or repeated capability name. Callers distinguish it from
// other validation failures with errors.As.
type PermissionsError struct {
	Reason string
}

func (e *PermissionsError) Error() string {
	return "permissions: " + e.Reason
}

// Load reads and parses a scenario YAML file. It rejects unknown
// fields (typos) and validates required fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &cfg, nil
}

// Validate checks that required fields are present and well formed.
// Hand-built configs go through the same gate as loaded files.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Description == "" {
		return fmt.Errorf("description is required")
	}
	if c.TargetURL == "" {
		return fmt.Errorf("target_url is required")
	}
	if _, err := origin(c.TargetURL); err != nil {
		return fmt.Errorf("target_url: %w", err)
	}

	if c.Permissions != nil {
		seen := mapset.NewSet[string]()
		for _, g := range c.Permissions.Grants {
			if !knownGrants.Contains(g) {
				return &PermissionsError{Reason: fmt.Sprintf("unknown grant %q", g)}
			}
			if !seen.Add(g) {
				return &PermissionsError{Reason: fmt.Sprintf("duplicate grant %q", g)}
			}
		}
	}

	if c.Geolocation != nil {
		if lat := c.Geolocation.Latitude; lat < -90 || lat > 90 {
			return fmt.Errorf("geolocation: latitude %v out of range [-90, 90]", lat)
		}
		if lon := c.Geolocation.Longitude; lon < -180 || lon > 180 {
			return fmt.Errorf("geolocation: longitude %v out of range [-180, 180]", lon)
		}
	}

	if len(c.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i := range c.Steps {
		if err := c.Steps[i].validate(i); err != nil {
			return err
		}
	}

	if c.Screenshot.Path == "" {
		return fmt.Errorf("screenshot: path is required")
	}
	return nil
}

// Origin returns the scheme://host[:port] part of TargetURL, the scope
// permission grants apply to.
func (c *Config) Origin() (string, error) {
	return origin(c.TargetURL)
}

func origin(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", target)
	}
	return u.Scheme + "://" + u.Host, nil
}

func (s *Step) validate(index int) error {
	kinds := 0
	if s.Select != nil {
		kinds++
	}
	if s.Fill != nil {
		kinds++
	}
	if s.Click != nil {
		kinds++
	}
	if s.Wait != nil {
		kinds++
	}
	if kinds == 0 {
		return fmt.Errorf("steps[%d]: one of select, fill, click, wait is required", index)
	}
	if kinds > 1 {
		return fmt.Errorf("steps[%d]: exactly one step kind may be set", index)
	}

	switch {
	case s.Select != nil:
		if s.Select.Label == "" {
			return fmt.Errorf("steps[%d].select: label is required", index)
		}
	case s.Fill != nil:
		if s.Fill.Placeholder == "" {
			return fmt.Errorf("steps[%d].fill: placeholder is required", index)
		}
		if s.Fill.Value == nil {
			return fmt.Errorf("steps[%d].fill: value is required (use \"\" to clear)", index)
		}
	case s.Click != nil:
		if s.Click.Role == "" {
			return fmt.Errorf("steps[%d].click: role is required", index)
		}
		if s.Click.Name == "" {
			return fmt.Errorf("steps[%d].click: name is required", index)
		}
	case s.Wait != nil:
		if s.Wait.Selector == "" && s.Wait.Text == "" {
			return fmt.Errorf("steps[%d].wait: selector or text is required", index)
		}
		if s.Wait.Selector != "" && s.Wait.Text != "" {
			return fmt.Errorf("steps[%d].wait: selector and text are mutually exclusive", index)
		}
		if s.Wait.Timeout < 0 {
			return fmt.Errorf("steps[%d].wait: timeout must be positive", index)
		}
	}
	return nil
}

// Describe renders a short human label for the step, used in plans,
// logs, and step errors.
func (s *Step) Describe() string {
	switch {
	case s.Select != nil:
		if s.Select.Name != "" {
			return fmt.Sprintf("select option %q in %q", s.Select.Label, s.Select.Name)
		}
		return fmt.Sprintf("select option %q", s.Select.Label)
	case s.Fill != nil:
		return fmt.Sprintf("fill %q", s.Fill.Placeholder)
	case s.Click != nil:
		return fmt.Sprintf("click %s %q", s.Click.Role, s.Click.Name)
	case s.Wait != nil:
		if s.Wait.Selector != "" {
			return fmt.Sprintf("wait for selector %q", s.Wait.Selector)
		}
		return fmt.Sprintf("wait for text %q", s.Wait.Text)
	}
	return "empty step"
}
