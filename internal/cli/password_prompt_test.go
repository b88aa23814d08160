package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadPromptLineTrimsLineEnding(t *testing.T) {
	cases := map[string]string{
		"barbell\n":       "barbell",
		"barbell\r\n":     "barbell",
		"no newline":      "no newline",
		"first\nsecond\n": "first",
		"":                "",
	}
	for input, expected := range cases {
		got, err := readPromptLine(strings.NewReader(input))
		if err != nil {
			t.Fatalf("read %q: %v", input, err)
		}
		if string(got) != expected {
			t.Fatalf("expected %q for %q, got %q", expected, input, got)
		}
	}
}

func TestReadPasswordNoEchoRejectsNonTerminal(t *testing.T) {
	if _, err := readPasswordNoEcho(nil); !errors.Is(err, errNoTerminal) {
		t.Fatalf("expected errNoTerminal for nil stdin, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "stdin.txt")
	if err := os.WriteFile(path, []byte("secret\n"), 0o600); err != nil {
		t.Fatalf("write stdin file: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open stdin file: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })

	if _, err := readPasswordNoEcho(file); !errors.Is(err, errNoTerminal) {
		t.Fatalf("expected errNoTerminal for a regular file, got %v", err)
	}
}
