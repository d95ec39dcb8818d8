package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_HasCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"check", "resolve", "watch"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	for _, flag := range []string{"legacy-dot", "max-depth", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.cm", "int z;\nvoid main() { z = 1; }\n")
	bad := writeFile(t, dir, "bad.cm", "void main() {\n  y = 1;\n}\n")

	t.Run("success", func(t *testing.T) {
		stdout, stderr, err := execute("check", good)
		if err != nil {
			t.Fatalf("unexpected error: %v\n%s", err, stderr)
		}
		if !strings.Contains(stdout, "✓ "+good+": name analysis successful") {
			t.Errorf("stdout:\n%s", stdout)
		}
	})

	t.Run("failure", func(t *testing.T) {
		stdout, stderr, err := execute("check", good, bad)

		var exitErr exitCodeError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 || !isReported(err) {
			t.Fatalf("got %v, want a reported exit status 1", err)
		}
		if want := bad + ":2:3: ***ERROR*** Undeclared identifier"; !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
		if !strings.Contains(stdout, "✓ "+good+": name analysis successful") {
			t.Errorf("good file not checked:\n%s", stdout)
		}
		if strings.Contains(stdout, bad+": name analysis successful") {
			t.Errorf("bad file reported successful:\n%s", stdout)
		}
	})

	t.Run("symbols", func(t *testing.T) {
		stdout, _, err := execute("check", "--symbols", good)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{
			"  variable z: int at " + good + ":1:5\n",
			"  function main: ->void at " + good + ":2:6\n",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("stdout missing %q:\n%s", want, stdout)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute("check", filepath.Join(dir, "nope.cm"))
		if err == nil || isReported(err) {
			t.Errorf("got %v, want an unreported read error", err)
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		if _, _, err := execute("check"); err == nil {
			t.Error("expected an argument error")
		}
	})
}

func TestPersistentFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.cm", "int x;\n")

	_, stderr, err := execute("--verbose", "check", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("--verbose produced no debug output:\n%s", stderr)
	}

	if _, _, err := execute("--legacy-dot", "--max-depth", "64", "check", path); err != nil {
		t.Errorf("flags rejected: %v", err)
	}
	if _, _, err := execute("--max-depth", "-1", "check", path); err == nil {
		t.Error("negative --max-depth accepted")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.cm", "int z;\nvoid main() { z = 1; }\n")
	bad := writeFile(t, dir, "bad.cm", "void v;\n")

	t.Run("stdout", func(t *testing.T) {
		stdout, _, err := execute("resolve", good)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout, "    z(int) = 1;\n") {
			t.Errorf("stdout:\n%s", stdout)
		}
	})

	t.Run("output file", func(t *testing.T) {
		out := filepath.Join(dir, "good.out")
		stdout, _, err := execute("resolve", good, "-o", out)
		if err != nil {
			t.Fatal(err)
		}
		if stdout != "" {
			t.Errorf("wrote to stdout with -o:\n%s", stdout)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "z(int) = 1;") {
			t.Errorf("output file:\n%s", data)
		}
	})

	t.Run("refuses on error", func(t *testing.T) {
		out := filepath.Join(dir, "bad.out")
		_, stderr, err := execute("resolve", bad, "-o", out)
		if err == nil {
			t.Fatal("expected failure")
		}
		if !strings.Contains(stderr, "Non-function declared void") {
			t.Errorf("stderr:\n%s", stderr)
		}
		if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
			t.Errorf("output file created for a failed analysis")
		}
	})
}

func TestFileWatcher_RejectsBadTargets(t *testing.T) {
	dir := t.TempDir()
	if _, err := newFileWatcher(dir); err == nil {
		t.Error("directory accepted")
	}
	if _, err := newFileWatcher(filepath.Join(dir, "missing.cm")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestFileWatcher_ReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "w.cm", "int x;\n")

	w, err := newFileWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, 20*time.Millisecond, func() { changed <- struct{}{} })
	}()

	writeFile(t, dir, "other.cm", "int y;\n")
	writeFile(t, dir, "w.cm", "int x;\nint y;\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
