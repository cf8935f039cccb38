// Package browser opens the OAuth consent page in the user's browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// Open starts the platform's URL handler for rawURL and returns without
// waiting for the browser.
func Open(rawURL string) error {
	cmd, err := Command(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command builds the command that opens rawURL on goos. Only absolute http
// and https URLs are accepted, since the URL ends up as a process argument.
func Command(goos, rawURL string) (*exec.Cmd, error) {
	if err := Validate(rawURL); err != nil {
		return nil, err
	}

	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", rawURL), nil // #nosec G204 -- URL validated above
	case "darwin":
		return exec.Command("open", rawURL), nil // #nosec G204 -- URL validated above
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil // #nosec G204 -- URL validated above
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Validate rejects anything but an absolute http(s) URL with a host.
func Validate(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: %q (only http and https allowed)", ErrUnsupportedScheme, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: %q has no host", rawURL)
	}
	return nil
}
