package release

import (
	"fmt"
	"sort"

	"github.com/joblift/wsrelease/internal/manifest"
	"github.com/joblift/wsrelease/internal/version"
)

// DefaultDistTag is used when no explicit tag is configured and the version
// carries no usable pre-release identifier.
const DefaultDistTag = "latest"

// ResolveDistTag picks the distribution tag for a release. An explicit tag
// always wins; otherwise a non-numeric pre-release identifier becomes the
// tag; otherwise the default.
func ResolveDistTag(ver, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	info, err := version.Parse(ver)
	if err != nil {
		return "", err
	}
	if info.IsPreRelease && info.PreReleaseID != "" {
		return info.PreReleaseID, nil
	}
	return DefaultDistTag, nil
}

// Bump rewrites every workspace manifest to the target version: the own
// version field plus any dependency entries referencing sibling workspaces,
// preserving range operators. In dry-run mode nothing is mutated; the
// affected package list is reported instead.
func (r *Runner) Bump(ver string) error {
	tag, err := ResolveDistTag(ver, r.cfg.DistTag)
	if err != nil {
		return err
	}
	r.distTag = tag
	r.version = ver

	all, err := r.workspaces()
	if err != nil {
		return err
	}
	names, err := r.registry.Names()
	if err != nil {
		return err
	}

	if r.cfg.DryRun {
		fmt.Fprintf(r.out, "Dry run: would bump %d packages to %s:\n", len(all), ver)
		for _, w := range all {
			fmt.Fprintf(r.out, "  %s\n", w.Name)
		}
		return nil
	}

	for _, w := range all {
		if w.Manifest.Manifest().Version == ver {
			fmt.Fprintf(r.errOut, "Warning: %s is already at version %s\n", w.Name, ver)
		}
		if err := w.Manifest.SetVersion(ver); err != nil {
			return err
		}
		for _, group := range manifest.DependencyGroups {
			deps := w.Manifest.Manifest().DependenciesFor(group)
			for _, dep := range sortedKeys(deps) {
				if !names[dep] {
					continue
				}
				if err := w.Manifest.SetDependency(group, dep, version.Rewrite(deps[dep], ver)); err != nil {
					return err
				}
			}
		}
		if err := w.Manifest.Write(); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Bumped %s to %s\n", w.Name, ver)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
