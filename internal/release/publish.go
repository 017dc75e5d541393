package release

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joblift/wsrelease/internal/npm"
	"github.com/joblift/wsrelease/internal/ui"
	"github.com/joblift/wsrelease/internal/workspace"
)

// sharedOTP is shared across all workspace publishes in one release so a
// user-supplied password is reused and a prompt happens at most once per
// distinct invalid or missing password, not once per workspace.
type sharedOTP struct {
	value string
}

// Release publishes every non-private workspace under the resolved
// distribution tag, sequentially. The whole step is gated behind one
// confirmation prompt listing the packages. OTP and access failures are
// recovered interactively per workspace; any other publish error aborts the
// remaining packages.
func (r *Runner) Release(ctx context.Context) error {
	if !r.cfg.Publish {
		return nil
	}
	all, err := r.workspaces()
	if err != nil {
		return err
	}
	tag, err := r.releaseTag(all)
	if err != nil {
		return err
	}

	items := make([]string, 0, len(all))
	for _, w := range all {
		item := w.Name
		if tag != DefaultDistTag {
			item += "@" + tag
		}
		items = append(items, item)
	}
	ok, err := r.prompter.Confirm(fmt.Sprintf("Publish %s?", strings.Join(items, ", ")))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(r.errOut, "Publish cancelled.")
		return nil
	}

	otp := &sharedOTP{value: r.cfg.OTP}
	progress := ui.NewProgress(r.errOut, len(all))
	for _, w := range all {
		if err := r.publishWorkspace(ctx, w, tag, otp, progress); err != nil {
			return err
		}
	}
	return nil
}

// releaseTag returns the tag resolved at bump time, falling back to
// resolving from the current workspace version when publishing standalone.
func (r *Runner) releaseTag(all []*workspace.Workspace) (string, error) {
	if r.distTag != "" {
		return r.distTag, nil
	}
	current := ""
	if len(all) > 0 {
		current = all[0].Manifest.Manifest().Version
	}
	tag, err := ResolveDistTag(current, r.cfg.DistTag)
	if err != nil {
		return "", err
	}
	r.distTag = tag
	return tag, nil
}

// publishWorkspace runs the retry loop for one workspace: attempt, then on
// an OTP failure prompt for a password and retry, on an access failure for a
// scoped package offer a public retry, and on anything else fail the release.
// Declining the public retry skips the package without failing the release.
func (r *Runner) publishWorkspace(ctx context.Context, w *workspace.Workspace, tag string, otp *sharedOTP, progress *ui.Progress) error {
	if w.Private {
		progress.Done(fmt.Sprintf("%s skipped (private)", w.Name))
		return nil
	}

	access := r.cfg.Access
	for {
		err := r.npm.Publish(ctx, w.Root, npm.PublishOptions{
			Tag:    tag,
			Access: access,
			OTP:    otp.value,
			DryRun: r.cfg.DryRun,
		})
		if err == nil {
			w.Released = true
			progress.Done(fmt.Sprintf("%s published", w.Name))
			return nil
		}

		var otpErr *npm.OTPError
		if errors.As(err, &otpErr) {
			if otp.value != "" {
				fmt.Fprintln(r.errOut, "Warning: the one-time password was invalid or has expired")
			}
			code, perr := r.prompter.OTP(fmt.Sprintf("One-time password required to publish %s", w.Name))
			if perr != nil {
				return perr
			}
			otp.value = code
			continue
		}

		var accessErr *npm.AccessError
		if errors.As(err, &accessErr) && strings.HasPrefix(w.Name, "@") {
			yes, perr := r.prompter.Confirm(fmt.Sprintf(
				"Publishing restricted package %s requires a paid plan. Publish it as public instead?", w.Name))
			if perr != nil {
				return perr
			}
			if !yes {
				progress.Done(fmt.Sprintf("%s skipped (restricted)", w.Name))
				return nil
			}
			access = "public"
			continue
		}

		return err
	}
}

// AfterRelease reports a browsing URL for every workspace that was published.
func (r *Runner) AfterRelease() error {
	all, err := r.workspaces()
	if err != nil {
		return err
	}
	for _, w := range all {
		if !w.Released {
			continue
		}
		u, err := releaseURL(r.npm.Registry(), w.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Released %s: %s\n", w.Name, u)
	}
	return nil
}

// releaseURL points at the package page on the configured registry when it
// is not the public default, else on the public browsing host.
func releaseURL(registry, name string) (string, error) {
	base := "https://www.npmjs.com"
	if registry != npm.DefaultRegistry {
		base = registry
	}
	return url.JoinPath(base, "package", name)
}
