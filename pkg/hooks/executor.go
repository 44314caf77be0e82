package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/ahkam/pkg/debug"
)

// maxOutput bounds the captured stdout/stderr kept per hook, in columns.
const maxOutput = 2000

// Result records one hook run.
type Result struct {
	Hook     Hook
	Phase    Phase
	Success  bool
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Executor runs the hooks of one export.
type Executor struct {
	config  *Config
	ctx     ExportContext
	results []Result
}

// NewExecutor binds cfg to one export.
func NewExecutor(cfg *Config, ctx ExportContext) *Executor {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Executor{config: cfg, ctx: ctx}
}

// RunPreExport runs the pre-export hooks, stopping at the first failing
// hook whose policy is "fail".
func (e *Executor) RunPreExport() error {
	return e.run(PreExport)
}

// RunPostExport runs every post-export hook and reports the first failure
// whose policy is "fail".
func (e *Executor) RunPostExport() error {
	return e.run(PostExport)
}

func (e *Executor) run(phase Phase) error {
	var firstErr error
	for _, h := range e.config.Get(phase) {
		res := e.runHook(h, phase)
		e.results = append(e.results, res)
		if res.Success || h.OnError != OnErrorFail {
			continue
		}
		err := fmt.Errorf("%s hook %q failed: %w", phase, h.Name, res.Error)
		if phase == PreExport {
			return err
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (e *Executor) runHook(h Hook, phase Phase) Result {
	ctx, cancel := context.WithTimeout(context.Background(), h.Timeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", h.Command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", h.Command)
	}
	cmd.WaitDelay = time.Second
	cmd.Env = append(os.Environ(), e.ctx.ToEnv()...)
	for k, v := range h.Env {
		cmd.Env = append(cmd.Env, k+"="+os.ExpandEnv(v))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Hook:     h,
		Phase:    phase,
		Stdout:   truncate(strings.TrimSpace(stdout.String()), maxOutput),
		Stderr:   truncate(strings.TrimSpace(stderr.String()), maxOutput),
		Duration: time.Since(start),
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Error = fmt.Errorf("timed out after %v", h.Timeout)
	case err != nil:
		res.Error = err
		if res.Stderr != "" {
			res.Error = fmt.Errorf("%w: %s", err, res.Stderr)
		}
	default:
		res.Success = true
	}
	debug.LogTiming("hook "+h.Name, res.Duration)
	debug.LogIf(!res.Success, "hook %s: %v", h.Name, res.Error)
	return res
}

// Results returns every hook run so far.
func (e *Executor) Results() []Result {
	return e.results
}

// Summary is a one-line tally, empty when nothing ran.
func (e *Executor) Summary() string {
	if len(e.results) == 0 {
		return ""
	}
	ok := 0
	for _, r := range e.results {
		if r.Success {
			ok++
		}
	}
	return fmt.Sprintf("Hooks: %d succeeded, %d failed", ok, len(e.results)-ok)
}

// truncate shortens s to n columns without splitting a rune.
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}

// RunHooks loads dir/hooks.yaml and returns an executor for ctx. It returns
// nil when disabled or when no hook is configured.
func RunHooks(dir string, ctx ExportContext, disabled bool) (*Executor, error) {
	if disabled || dir == "" {
		return nil, nil
	}
	cfg, warnings, err := Load(dir)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		debug.Log("hooks: %s", w)
	}
	if cfg.Empty() {
		return nil, nil
	}
	return NewExecutor(cfg, ctx), nil
}
