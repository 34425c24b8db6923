package readme

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestMITLicense(t *testing.T) {
	text := MITLicense("Octo Cat")

	if !strings.HasPrefix(text, "MIT License") {
		t.Error("license does not start with the MIT header")
	}
	want := fmt.Sprintf("Copyright (c) %d Octo Cat", time.Now().Year())
	if !strings.Contains(text, want) {
		t.Errorf("license missing %q", want)
	}
}

func TestGitignore_LanguageBlocks(t *testing.T) {
	py := Gitignore("Python")
	if !strings.Contains(py, "__pycache__/") {
		t.Error("python gitignore missing __pycache__/")
	}
	if !strings.Contains(py, ".env") {
		t.Error("python gitignore missing common block")
	}

	goIgnore := Gitignore("Go")
	if !strings.Contains(goIgnore, "vendor/") {
		t.Error("go gitignore missing vendor/")
	}
}

func TestGitignore_UnknownLanguageFallsBack(t *testing.T) {
	got := Gitignore("Brainfuck")
	if got != gitignoreCommon {
		t.Errorf("unknown language should yield only the common block, got %q", got)
	}
}
