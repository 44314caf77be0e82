package main_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

var ahkamBinaryPath string
var ahkamBinaryDir string

var (
	scriptTUISupported      = true
	scriptTUIDisabledReason string
)

func TestMain(m *testing.M) {
	// Keep the user's config and content out of the runs.
	os.Unsetenv("AHKAM_CONTENT")
	os.Setenv("XDG_CONFIG_HOME", os.TempDir())

	if err := buildAhkamOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build ahkam binary: %v\n", err)
		os.Exit(1)
	}

	scriptTUISupported, scriptTUIDisabledReason = detectScriptTUICapability(ahkamBinaryPath)

	code := m.Run()
	if ahkamBinaryDir != "" {
		_ = os.RemoveAll(ahkamBinaryDir)
	}
	os.Exit(code)
}

func detectScriptTUICapability(binPath string) (bool, string) {
	if _, err := exec.LookPath("script"); err != nil {
		return false, "script command not available"
	}
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		return false, "script TUI harness unsupported on this OS"
	}
	if binPath == "" {
		return false, "ahkam binary path is empty"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cmd := scriptTUICommand(ctx, binPath)
	if cmd == nil {
		return false, "script command unavailable"
	}
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"AHKAM_TUI_AUTOCLOSE_MS=250",
	)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return false, "ahkam did not auto-exit under script (PTY/CI mismatch)"
	}
	if runErr != nil {
		return false, fmt.Sprintf("script TUI run failed: %v", runErr)
	}
	return true, ""
}

func buildAhkamOnce() error {
	tempDir, err := os.MkdirTemp("", "ahkam-e2e-build-*")
	if err != nil {
		return err
	}
	ahkamBinaryDir = tempDir

	binName := "ahkam"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(tempDir, binName)

	cmd := exec.Command("go", "build", "-o", binPath, "../../cmd/ahkam")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go build failed: %v\n%s", err, out)
	}

	ahkamBinaryPath = binPath
	return nil
}

// buildAhkamBinary returns the path to the pre-built binary.
func buildAhkamBinary(t *testing.T) string {
	t.Helper()
	if ahkamBinaryPath == "" {
		t.Fatal("ahkam binary not built")
	}
	return ahkamBinaryPath
}

// skipIfNoScript skips the test if the script command is unavailable.
func skipIfNoScript(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("script"); err != nil {
		t.Skip("skipping: script command not available")
	}
	if !scriptTUISupported {
		if scriptTUIDisabledReason != "" {
			t.Skipf("skipping: %s", scriptTUIDisabledReason)
		}
		t.Skip("skipping: script-based TUI harness unavailable")
	}
}

// scriptTUICommand runs the binary under `script` so it gets a pseudo-TTY.
func scriptTUICommand(ctx context.Context, binPath string, args ...string) *exec.Cmd {
	if _, err := exec.LookPath("script"); err != nil {
		return nil
	}

	switch runtime.GOOS {
	case "darwin":
		scriptArgs := []string{"-q", "/dev/null", binPath}
		scriptArgs = append(scriptArgs, args...)
		return exec.CommandContext(ctx, "script", scriptArgs...)

	case "linux":
		cmdStr := binPath
		for _, arg := range args {
			if strings.ContainsAny(arg, " \t") {
				cmdStr += " \"" + arg + "\""
			} else {
				cmdStr += " " + arg
			}
		}
		return exec.CommandContext(ctx, "script", "-q", "-e", "-f", "-c", cmdStr, "/dev/null")

	default:
		return nil
	}
}

// runCmdToFile runs a command and captures stdout+stderr to a temp file.
func runCmdToFile(t *testing.T, cmd *exec.Cmd) ([]byte, error) {
	t.Helper()
	if cmd == nil {
		return nil, fmt.Errorf("nil cmd")
	}

	outPath := filepath.Join(t.TempDir(), "cmd.out")
	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	cmd.Stdout = f
	cmd.Stderr = f

	runErr := cmd.Run()
	_ = f.Close()

	out, readErr := os.ReadFile(outPath)
	if readErr != nil {
		return nil, fmt.Errorf("read output file: %w (run err: %v)", readErr, runErr)
	}
	return out, runErr
}
