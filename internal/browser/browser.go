// Package browser owns the playwright session: driver startup, an
// isolated chromium context with its permission state, and the page
// surface the step engine drives.
package browser

import (
	"fmt"
	"os"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// envExecutablePath selects a system browser binary instead of the
// bundled chromium and skips the driver download.
const envExecutablePath = "PLAYWRIGHT_CHROMIUM_EXECUTABLE_PATH"

// Options configure a session.
type Options struct {
	Headless       bool
	ExecutablePath string // system browser binary; overrides the env variable
}

// Session owns one isolated browser context and the single page inside
// it. Close releases everything Open acquired.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
	page    playwright.Page

	closeOnce sync.Once
	closeErr  error
}

// Open ensures the chromium driver is available, starts playwright,
// launches the browser, and prepares an isolated context with a single
// page. On error the partially opened session is already released.
func Open(opts Options) (*Session, error) {
	execPath := opts.ExecutablePath
	if execPath == "" {
		execPath = os.Getenv(envExecutablePath)
	}
	if execPath == "" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("install browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	s := &Session{pw: pw}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     []string{"--disable-dev-shm-usage"},
	}
	if execPath != "" {
		launchOpts.ExecutablePath = playwright.String(execPath)
	}
	s.browser, err = pw.Chromium.Launch(launchOpts)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	s.ctx, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("new context: %w", err)
	}

	s.page, err = s.ctx.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	return s, nil
}

// Grant pre-authorizes capabilities for origin. An empty list revokes
// every capability the context had.
func (s *Session) Grant(grants []string, origin string) error {
	if grants == nil {
		grants = []string{}
	}
	return s.ctx.GrantPermissions(grants, playwright.BrowserContextGrantPermissionsOptions{
		Origin: playwright.String(origin),
	})
}

// SetGeolocation fixes the coordinates pages in this session observe.
func (s *Session) SetGeolocation(latitude, longitude float64) error {
	return s.ctx.SetGeolocation(&playwright.Geolocation{
		Latitude:  latitude,
		Longitude: longitude,
	})
}

// Page returns the session's page surface.
func (s *Session) Page() Page {
	return &pwPage{page: s.page}
}

// Close releases the page, context, browser, and driver. It runs the
// teardown exactly once no matter how often it is called, and it is
// safe on a partially opened session. The first teardown error wins.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.page != nil {
			if err := s.page.Close(); err != nil && s.closeErr == nil {
				s.closeErr = fmt.Errorf("close page: %w", err)
			}
		}
		if s.ctx != nil {
			if err := s.ctx.Close(); err != nil && s.closeErr == nil {
				s.closeErr = fmt.Errorf("close context: %w", err)
			}
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil && s.closeErr == nil {
				s.closeErr = fmt.Errorf("close browser: %w", err)
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil && s.closeErr == nil {
				s.closeErr = fmt.Errorf("stop driver: %w", err)
			}
		}
	})
	return s.closeErr
}
