package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gmaps-scraper/config"
	"gmaps-scraper/scraper/maps"
	"gmaps-scraper/utils"
)

// stubSession replaces the browser with one that always fails to start and
// reports whether it was asked to.
func stubSession(t *testing.T) *bool {
	t.Helper()
	called := false
	orig := newSession
	newSession = func(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*maps.Session, error) {
		called = true
		return nil, errors.New("no browser in tests")
	}
	t.Cleanup(func() { newSession = orig })
	return &called
}

func TestRunWithoutTermsExitsBeforeBrowser(t *testing.T) {
	dir := t.TempDir()
	blank := filepath.Join(dir, "blank.txt")
	if err := os.WriteFile(blank, []byte("\n  \n"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"missing input file", filepath.Join(dir, "absent.txt")},
		{"blank input file", blank},
	}
	for _, tt := range tests {
		called := stubSession(t)
		out := filepath.Join(dir, "output-"+strings.ReplaceAll(tt.name, " ", "-"))
		var stderr bytes.Buffer

		code := run([]string{"-i", tt.input, "-o", out}, &stderr)
		if code != 1 {
			t.Errorf("%s: exit code %d, want 1", tt.name, code)
		}
		if *called {
			t.Errorf("%s: browser was started", tt.name)
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Errorf("%s: output dir should not exist, stat err = %v", tt.name, err)
		}
		if !strings.Contains(stderr.String(), "no search terms") {
			t.Errorf("%s: stderr missing diagnostic: %q", tt.name, stderr.String())
		}
	}
}

func TestRunBrowserFailureExitsOne(t *testing.T) {
	called := stubSession(t)
	out := filepath.Join(t.TempDir(), "output")
	var stderr bytes.Buffer

	code := run([]string{"-s", "pizza rome", "-o", out}, &stderr)
	if code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
	if !*called {
		t.Error("browser should have been started")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output dir should not exist, stat err = %v", err)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	called := stubSession(t)
	var stderr bytes.Buffer

	if code := run([]string{"-nope"}, &stderr); code != 2 {
		t.Errorf("exit code %d, want 2", code)
	}
	if *called {
		t.Error("browser was started")
	}
}
