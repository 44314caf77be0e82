package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func writeContent(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ahkam.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 callback invocation, got %d", n)
	}
}

func TestDebouncer_LastTriggerWins(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var got atomic.Int32
	for i := int32(1); i <= 3; i++ {
		v := i
		d.Trigger(func() { got.Store(v) })
	}
	time.Sleep(100 * time.Millisecond)
	if got.Load() != 3 {
		t.Errorf("expected last trigger to run, got %d", got.Load())
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var called atomic.Bool
	d.Trigger(func() { called.Store(true) })
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if called.Load() {
		t.Error("callback should not have been invoked after cancel")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	if d := NewDebouncer(0); d.Duration() != DefaultDebounceDuration {
		t.Errorf("expected default duration %v, got %v", DefaultDebounceDuration, d.Duration())
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	path := writeContent(t, "chapters: []\n")

	var changed atomic.Bool
	w, err := NewWatcher(path,
		WithDebounceDuration(30*time.Millisecond),
		WithPollInterval(25*time.Millisecond),
		WithOnChange(func() { changed.Store(true) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("chapters: [{id: a}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 2*time.Second, changed.Load) {
		t.Error("expected change to be detected")
	}
}

func TestWatcher_PollingDetectsChange(t *testing.T) {
	path := writeContent(t, "a")

	w, err := NewWatcher(path,
		WithDebounceDuration(10*time.Millisecond),
		WithPollInterval(20*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode")
	}

	// Size change is visible even when mtime granularity is coarse.
	if err := os.WriteFile(path, []byte("a longer body"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changed():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change on the channel")
	}
}

func TestWatcher_EnvForcePoll(t *testing.T) {
	t.Setenv("AHKAM_FORCE_POLL", "yes")
	path := writeContent(t, "a")

	w, err := NewWatcher(path, WithPollInterval(25*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling when AHKAM_FORCE_POLL is set")
	}
}

func TestWatcher_RemoteFilesystemUsesPolling(t *testing.T) {
	path := writeContent(t, "a")

	orig := detectFilesystemTypeFunc
	detectFilesystemTypeFunc = func(string) FilesystemType { return FSTypeNFS }
	t.Cleanup(func() { detectFilesystemTypeFunc = orig })

	w, err := NewWatcher(path, WithPollInterval(25*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling on a remote filesystem")
	}
	if got := w.FilesystemType(); got != FSTypeNFS {
		t.Fatalf("expected %v, got %v", FSTypeNFS, got)
	}
}

func TestWatcher_FileRemoved(t *testing.T) {
	path := writeContent(t, "a")

	var (
		mu  sync.Mutex
		got error
	)
	w, err := NewWatcher(path,
		WithPollInterval(30*time.Millisecond),
		WithForcePoll(true),
		WithOnError(func(err error) {
			mu.Lock()
			got = err
			mu.Unlock()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	ok := waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return errors.Is(got, ErrFileRemoved)
	})
	if !ok {
		t.Errorf("expected ErrFileRemoved, got %v", got)
	}
}

func TestWatcher_ContextCancelStopsPolling(t *testing.T) {
	path := writeContent(t, "a")

	var calls atomic.Int32
	w, err := NewWatcher(path,
		WithDebounceDuration(5*time.Millisecond),
		WithPollInterval(10*time.Millisecond),
		WithForcePoll(true),
		WithOnChange(func() { calls.Add(1) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	cancel()
	time.Sleep(40 * time.Millisecond)
	if err := os.WriteFile(path, []byte("changed after cancel"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	if calls.Load() != 0 {
		t.Errorf("expected no change callbacks after cancel, got %d", calls.Load())
	}
}

func TestWatcher_StartStop(t *testing.T) {
	path := writeContent(t, "a")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if w.IsStarted() {
		t.Error("watcher should not be started initially")
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !w.IsStarted() {
		t.Error("watcher should be started after Start")
	}
	if err := w.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	w.Stop()
	if w.IsStarted() {
		t.Error("watcher should not be started after Stop")
	}
	w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Errorf("restart after Stop failed: %v", err)
	}
	w.Stop()
}

func TestWatcher_PathAndInterval(t *testing.T) {
	path := writeContent(t, "a")

	w, err := NewWatcher(path, WithPollInterval(500*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs(path)
	if w.Path() != abs {
		t.Errorf("expected path %s, got %s", abs, w.Path())
	}
	if w.PollInterval() != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", w.PollInterval())
	}
}

func TestFilesystemType_String(t *testing.T) {
	tests := []struct {
		fsType   FilesystemType
		expected string
	}{
		{FSTypeUnknown, "unknown"},
		{FSTypeLocal, "local"},
		{FSTypeNFS, "nfs"},
		{FSTypeSMB, "smb"},
		{FSTypeFUSE, "fuse"},
		{FilesystemType(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.fsType.String(); got != tc.expected {
			t.Errorf("FilesystemType(%d).String() = %q, expected %q", tc.fsType, got, tc.expected)
		}
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"TRUE", true},
		{"yes", true},
		{"y", true},
		{" on ", true},
		{"0", false},
		{"no", false},
		{"", false},
		{"maybe", false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("TEST_ENV_BOOL", tc.value)
			if got := envBool("TEST_ENV_BOOL"); got != tc.expected {
				t.Errorf("envBool(%q) = %v, expected %v", tc.value, got, tc.expected)
			}
		})
	}
}

func TestDetectFilesystemType_EmptyPath(t *testing.T) {
	if got := DetectFilesystemType(""); got != FSTypeUnknown {
		t.Errorf("expected FSTypeUnknown, got %v", got)
	}
}

func TestDetectFilesystemType_NonExistentPath(t *testing.T) {
	_ = DetectFilesystemType(filepath.Join(t.TempDir(), "missing", "ahkam.yaml"))
}
