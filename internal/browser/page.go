package browser

import (
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Handle is a resolved reference to one element. Waits block until the
// condition holds or the timeout elapses.
type Handle interface {
	WaitVisible(timeout time.Duration) error
	WaitEnabled(timeout time.Duration) error
	Click(timeout time.Duration) error
	Fill(value string, timeout time.Duration) error
	SelectLabel(label string, timeout time.Duration) error
}

// Page is the surface the step engine drives. Tests substitute fakes;
// the playwright implementation lives below.
type Page interface {
	Navigate(url string, timeout time.Duration) error
	ByRole(role, name string) Handle
	ByPlaceholder(text string) Handle
	ByText(text string) Handle
	BySelector(selector string) Handle
	Screenshot(path string) error
}

type pwPage struct {
	page playwright.Page
}

// Navigate loads url and waits for the network to settle.
func (p *pwPage) Navigate(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(ms(timeout)),
	})
	return err
}

func (p *pwPage) ByRole(role, name string) Handle {
	opts := playwright.PageGetByRoleOptions{}
	if name != "" {
		opts.Name = name
	}
	return &pwHandle{loc: p.page.GetByRole(playwright.AriaRole(role), opts)}
}

func (p *pwPage) ByPlaceholder(text string) Handle {
	return &pwHandle{loc: p.page.GetByPlaceholder(text)}
}

func (p *pwPage) ByText(text string) Handle {
	return &pwHandle{loc: p.page.GetByText(text)}
}

func (p *pwPage) BySelector(selector string) Handle {
	return &pwHandle{loc: p.page.Locator(selector)}
}

// Screenshot captures the full page to path, creating parent
// directories as needed.
func (p *pwPage) Screenshot(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

type pwHandle struct {
	loc playwright.Locator
}

func (h *pwHandle) WaitVisible(timeout time.Duration) error {
	return h.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(timeout)),
	})
}

// WaitEnabled retries until the control reports enabled, the way the
// driver's expect assertions do.
func (h *pwHandle) WaitEnabled(timeout time.Duration) error {
	return playwright.NewPlaywrightAssertions(ms(timeout)).Locator(h.loc).ToBeEnabled()
}

func (h *pwHandle) Click(timeout time.Duration) error {
	return h.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
}

func (h *pwHandle) Fill(value string, timeout time.Duration) error {
	return h.loc.Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
}

func (h *pwHandle) SelectLabel(label string, timeout time.Duration) error {
	_, err := h.loc.SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	}, playwright.LocatorSelectOptionOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
	return err
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
