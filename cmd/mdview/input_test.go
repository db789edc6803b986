package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/mdview"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadInputsFileAndURL(t *testing.T) {
	path := writeInput(t, t.TempDir(), "input.md", "hello")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("stream"))
	}))
	defer srv.Close()

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "path", arg: path, want: "hello"},
		{name: "file url", arg: "file://" + path, want: "hello"},
		{name: "http", arg: srv.URL, want: "stream"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, _, err := readInputs(context.Background(), []string{tc.arg}, nil)
			if err != nil {
				t.Fatalf("read inputs: %v", err)
			}
			if string(data) != tc.want {
				t.Fatalf("want %q got %q", tc.want, data)
			}
		})
	}
}

func TestReadInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "a.md", "one ")
	second := writeInput(t, dir, "b.md", "two")
	data, inputs, err := readInputs(context.Background(), []string{first, "-", second}, strings.NewReader("and "))
	if err != nil {
		t.Fatalf("read inputs: %v", err)
	}
	if string(data) != "one and two" {
		t.Fatalf("unexpected concatenated content: %q", data)
	}
	if len(inputs) != 3 || inputs[1].kind != inputStdin {
		t.Fatalf("unexpected inputs %+v", inputs)
	}
}

func TestReadInputsDefaultsToStdin(t *testing.T) {
	data, inputs, err := readInputs(context.Background(), nil, strings.NewReader("piped"))
	if err != nil {
		t.Fatalf("read inputs: %v", err)
	}
	if string(data) != "piped" || len(inputs) != 1 || inputs[0].name() != "stdin" {
		t.Fatalf("unexpected stdin read %q %+v", data, inputs)
	}
}

func TestReadInputsErrors(t *testing.T) {
	if _, _, err := readInputs(context.Background(), []string{" "}, nil); err == nil {
		t.Fatalf("expected error for empty input argument")
	}
	missing := filepath.Join(t.TempDir(), "missing.md")
	_, _, err := readInputs(context.Background(), []string{missing}, nil)
	if err == nil || !strings.Contains(err.Error(), "read missing.md") {
		t.Fatalf("expected error naming the input, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := expandHome("~/notes/a.md"); got != filepath.Join(home, "notes", "a.md") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := expandHome("~"); got != home {
		t.Fatalf("unexpected home %q", got)
	}
	if got := expandHome("rel/a.md"); got != "rel/a.md" {
		t.Fatalf("relative path changed: %q", got)
	}
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		src  string
		args []string
		want string
	}{
		{src: "---\ntitle: From Meta\n---\nx\n", args: []string{"a.md"}, want: "From Meta"},
		{src: "x\n", args: []string{"docs/readme.md"}, want: "readme.md"},
		{src: "x\n", args: []string{"https://example.com/guide/intro.md"}, want: "intro.md"},
		{src: "x\n", args: []string{"https://example.com/"}, want: "https://example.com/"},
		{src: "x\n", args: []string{"-"}, want: "stdin"},
		{src: "x\n", want: "stdin"},
	}
	for _, tc := range tests {
		doc, err := mdview.ParseDocument([]byte(tc.src))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		var inputs []input
		for _, arg := range tc.args {
			in, err := parseInput(arg)
			if err != nil {
				t.Fatalf("parse input %q: %v", arg, err)
			}
			inputs = append(inputs, in)
		}
		if got := documentTitle(doc, inputs); got != tc.want {
			t.Fatalf("want %q got %q", tc.want, got)
		}
	}
}
