// Package npm shells out to the npm binary for registry interaction. All
// registry behavior lives behind these commands; nothing in this repo speaks
// the registry protocol directly.
package npm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// DefaultRegistry is the public npm registry URL.
const DefaultRegistry = "https://registry.npmjs.org"

// checkTimeout bounds the combined ping + whoami preflight.
const checkTimeout = 10 * time.Second

var (
	// ErrRegistryTimeout indicates the preflight checks did not resolve in time.
	ErrRegistryTimeout = errors.New("registry preflight timed out")
	// ErrRegistryAuth indicates the whoami check failed.
	ErrRegistryAuth = errors.New("not authenticated with the registry")
)

// OTPError indicates a publish was rejected pending a one-time password.
// Recoverable: the caller may retry with a fresh OTP.
type OTPError struct {
	Output string
}

func (e *OTPError) Error() string {
	return "npm publish requires a one-time password"
}

// AccessError indicates the registry refused to publish a restricted package
// on the current plan. Recoverable for scoped packages by retrying with
// public access.
type AccessError struct {
	Output string
}

func (e *AccessError) Error() string {
	return "registry refused restricted publish"
}

var (
	otpPattern         = regexp.MustCompile(`(?i)one-?time pass|\bEOTP\b`)
	accessPattern      = regexp.MustCompile(`(?i)you must sign up for private packages|402 payment required`)
	unsupportedPattern = regexp.MustCompile(`(?i)\b404\b|not found|ping not supported`)
)

// PublishOptions configures one npm publish invocation.
type PublishOptions struct {
	Tag    string
	Access string // "" leaves the registry default in place
	OTP    string
	DryRun bool
}

// runFunc executes npm with args in dir and returns combined output.
type runFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Client invokes npm against one registry. The zero registry means the
// public default.
type Client struct {
	registry string
	run      runFunc
}

// NewClient returns a client for the given registry URL ("" for the default).
func NewClient(registry string) *Client {
	return &Client{registry: registry, run: runNpm}
}

// Registry returns the effective registry URL.
func (c *Client) Registry() string {
	if c.registry == "" {
		return DefaultRegistry
	}
	return c.registry
}

// Publish runs npm publish for the package in dir. OTP and access failures
// come back as *OTPError / *AccessError so the caller can recover; anything
// else is fatal as-is.
func (c *Client) Publish(ctx context.Context, dir string, opts PublishOptions) error {
	args := []string{"publish", ".", "--tag", opts.Tag}
	if opts.Access != "" {
		args = append(args, "--access", opts.Access)
	}
	if opts.OTP != "" {
		args = append(args, "--otp", opts.OTP)
	}
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	out, err := c.run(ctx, dir, args...)
	if err == nil {
		return nil
	}
	switch {
	case otpPattern.MatchString(out):
		return &OTPError{Output: out}
	case accessPattern.MatchString(out):
		return &AccessError{Output: out}
	}
	return fmt.Errorf("npm publish in %s: %w: %s", dir, err, firstLines(out, 4))
}

// CheckRegistry verifies the registry is reachable and the user is
// authenticated. Both checks share a single deadline. Registries that do not
// implement ping or whoami (404/"not found" class responses) pass with a
// warning written to out.
func (c *Client) CheckRegistry(ctx context.Context, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := c.Ping(ctx, out); err != nil {
		return err
	}
	return c.Whoami(ctx, out)
}

// Ping checks registry reachability.
func (c *Client) Ping(ctx context.Context, out io.Writer) error {
	o, err := c.run(ctx, ".", "ping", "--registry", c.Registry())
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: npm ping against %s", ErrRegistryTimeout, c.Registry())
	}
	if unsupportedPattern.MatchString(o) {
		fmt.Fprintf(out, "Warning: registry %s does not support ping, skipping check\n", c.Registry())
		return nil
	}
	return fmt.Errorf("cannot reach registry %s: %s", c.Registry(), firstLines(o, 4))
}

// Whoami checks the current authentication against the registry.
func (c *Client) Whoami(ctx context.Context, out io.Writer) error {
	o, err := c.run(ctx, ".", "whoami", "--registry", c.Registry())
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: npm whoami against %s", ErrRegistryTimeout, c.Registry())
	}
	if unsupportedPattern.MatchString(o) {
		fmt.Fprintf(out, "Warning: registry %s does not support whoami, skipping check\n", c.Registry())
		return nil
	}
	return fmt.Errorf("%w (%s): %s", ErrRegistryAuth, c.Registry(), firstLines(o, 4))
}

// IsInstalled returns true if npm is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("npm")
	return err == nil
}

// Version returns the npm version string.
func Version(ctx context.Context) (string, error) {
	out, err := runNpm(ctx, ".", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// runNpm executes npm in the given directory, capturing combined output.
func runNpm(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "npm", args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return buf.String(), fmt.Errorf("npm %s: %w", strings.Join(args, " "), err)
	}
	return buf.String(), nil
}

// firstLines trims command output down to its first n non-empty lines.
func firstLines(s string, n int) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == n {
			break
		}
	}
	return strings.Join(kept, "\n")
}
