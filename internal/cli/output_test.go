package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Notes:
// - warnNonMarkdownExtension is a pure function over an io.Writer.
// - writeFileAtomic is exercised against t.TempDir().

// ---------------------------------------------------------------------------
// TestWarnNonMarkdownExtension - Extension warning logic
// ---------------------------------------------------------------------------

func TestWarnNonMarkdownExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		wantWarning bool
		wantContain string
	}{
		{name: "md extension lowercase", path: "word.md"},
		{name: "md extension uppercase", path: "word.MD"},
		{name: "no extension", path: "word"},
		{name: "nested md", path: "/tmp/words/word_2026-10-15.md"},
		{name: "txt extension", path: "word.txt", wantWarning: true, wantContain: ".txt"},
		{name: "uppercase extension normalized", path: "word.HTML", wantWarning: true, wantContain: ".html"},
		{name: "double extension", path: "word.md.bak", wantWarning: true, wantContain: ".bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf syncBuffer
			warnNonMarkdownExtension(&buf, tt.path)

			got := buf.String()
			if tt.wantWarning != (got != "") {
				t.Fatalf("warning = %q, wantWarning %v", got, tt.wantWarning)
			}
			if tt.wantWarning && !strings.Contains(got, tt.wantContain) {
				t.Errorf("warning = %q, want it to contain %q", got, tt.wantContain)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDefaultWordFilename
// ---------------------------------------------------------------------------

func TestDefaultWordFilename(t *testing.T) {
	t.Parallel()

	got := defaultWordFilename(time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC))
	if got != "word_2026-01-02.md" {
		t.Errorf("defaultWordFilename() = %q, want %q", got, "word_2026-01-02.md")
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "word.md")
		if err := writeFileAtomic(path, "### Haus\n"); err != nil {
			t.Fatalf("writeFileAtomic() unexpected error: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() unexpected error: %v", err)
		}
		if string(got) != "### Haus\n" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "word.md")
		if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		err := writeFileAtomic(path, "new")
		if !errors.Is(err, ErrOutputExists) {
			t.Errorf("writeFileAtomic() error = %v, want ErrOutputExists", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "keep" {
			t.Errorf("existing file modified: %q", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "word.md")
		err := writeFileAtomic(path, "x")
		if err == nil || errors.Is(err, ErrOutputExists) {
			t.Errorf("writeFileAtomic() error = %v, want create failure", err)
		}
	})
}
