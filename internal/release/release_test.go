package release

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/joblift/wsrelease/internal/npm"
	"github.com/joblift/wsrelease/internal/testutil"
)

type publishCall struct {
	dir  string
	opts npm.PublishOptions
}

// fakePublisher replays a script of publish errors and records every call.
type fakePublisher struct {
	registry string
	checkErr error
	script   []error
	calls    []publishCall
}

func (f *fakePublisher) Publish(_ context.Context, dir string, opts npm.PublishOptions) error {
	f.calls = append(f.calls, publishCall{dir: dir, opts: opts})
	if len(f.script) == 0 {
		return nil
	}
	err := f.script[0]
	f.script = f.script[1:]
	return err
}

func (f *fakePublisher) CheckRegistry(_ context.Context, _ io.Writer) error { return f.checkErr }

func (f *fakePublisher) Registry() string {
	if f.registry == "" {
		return npm.DefaultRegistry
	}
	return f.registry
}

// fakePrompter replays scripted answers and fails the test flow on
// unexpected prompts.
type fakePrompter struct {
	otps      []string
	confirms  []bool
	otpCalls  int
	questions []string
}

func (f *fakePrompter) OTP(reason string) (string, error) {
	if f.otpCalls >= len(f.otps) {
		return "", fmt.Errorf("unexpected OTP prompt: %s", reason)
	}
	v := f.otps[f.otpCalls]
	f.otpCalls++
	return v, nil
}

func (f *fakePrompter) Confirm(question string) (bool, error) {
	f.questions = append(f.questions, question)
	if len(f.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirmation prompt: %s", question)
	}
	v := f.confirms[0]
	f.confirms = f.confirms[1:]
	return v, nil
}

// twoPackageRepo writes a monorepo where @org/b depends on @org/a.
func twoPackageRepo(t *testing.T) string {
	t.Helper()
	root := testutil.WriteRoot(t, "packages/*")
	testutil.WritePackage(t, root, "packages/a", testutil.Package{Name: "@org/a", Version: "1.0.0"})
	testutil.WritePackage(t, root, "packages/b", testutil.Package{
		Name: "@org/b", Version: "1.0.0",
		Deps: map[string]string{"@org/a": "^1.0.0", "left-pad": "^1.3.0"},
	})
	return root
}

type testRunner struct {
	*Runner
	pub    *fakePublisher
	prompt *fakePrompter
	out    *strings.Builder
	errOut *strings.Builder
}

func newTestRunner(root string, cfg Config, pub *fakePublisher, prompt *fakePrompter) *testRunner {
	cfg.Root = root
	if pub == nil {
		pub = &fakePublisher{}
	}
	if prompt == nil {
		prompt = &fakePrompter{}
	}
	out := &strings.Builder{}
	errOut := &strings.Builder{}
	return &testRunner{
		Runner: NewRunner(cfg, pub, prompt, out, errOut),
		pub:    pub,
		prompt: prompt,
		out:    out,
		errOut: errOut,
	}
}
