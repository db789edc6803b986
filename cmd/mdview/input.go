package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pkt.systems/mdview"
)

type inputKind uint8

const (
	inputStdin inputKind = iota
	inputFile
	inputURL
)

// input is one document argument: "-", a path, or a file:// or http(s) URL.
type input struct {
	kind     inputKind
	location string
}

func parseInput(arg string) (input, error) {
	arg = strings.TrimSpace(arg)
	switch arg {
	case "":
		return input{}, errors.New("empty input argument")
	case "-":
		return input{kind: inputStdin}, nil
	}
	if u, err := url.Parse(arg); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return input{kind: inputURL, location: arg}, nil
		case "file":
			p := u.Path
			if p == "" {
				p = u.Host
			}
			return input{kind: inputFile, location: p}, nil
		}
	}
	return input{kind: inputFile, location: expandHome(arg)}, nil
}

// name is the short label shown when the document has no title.
func (in input) name() string {
	switch in.kind {
	case inputStdin:
		return "stdin"
	case inputURL:
		if u, err := url.Parse(in.location); err == nil && strings.Trim(u.Path, "/") != "" {
			return path.Base(u.Path)
		}
		return in.location
	}
	return filepath.Base(in.location)
}

func (in input) read(ctx context.Context, stdin io.Reader) ([]byte, error) {
	switch in.kind {
	case inputStdin:
		if stdin == nil {
			return nil, errors.New("stdin is not available")
		}
		return io.ReadAll(stdin)
	case inputURL:
		body, err := mdview.Fetch(ctx, mdview.FetchRequest{URL: in.location})
		if err != nil {
			return nil, err
		}
		defer func() { _ = body.Close() }()
		return io.ReadAll(body)
	}
	return os.ReadFile(in.location)
}

// readInputs parses every argument before reading any of them, then joins
// their contents in order. No arguments means stdin.
func readInputs(ctx context.Context, args []string, stdin io.Reader) ([]byte, []input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		in, err := parseInput(arg)
		if err != nil {
			return nil, nil, err
		}
		inputs = append(inputs, in)
	}
	var buf bytes.Buffer
	for _, in := range inputs {
		data, err := in.read(ctx, stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", in.name(), err)
		}
		buf.Write(data)
	}
	return buf.Bytes(), inputs, nil
}

func createOutput(p string) (*os.File, error) {
	p = expandHome(strings.TrimSpace(p))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	return os.Create(p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}
