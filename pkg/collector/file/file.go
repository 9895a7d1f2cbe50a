// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser reads small text counter files such as the ones under /proc.
type Parser struct {
	maxSize      int
	skipComments bool
}

// WithMaxSize caps the number of bytes a file may contain.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments drops lines starting with '#'.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// NewParser returns a Parser with a 1MB size cap and comment skipping enabled.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:      1 << 20,
		skipComments: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines returns the non-empty, trimmed lines of the file at path.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	parts := strings.Split(string(b), "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}

	return result, nil
}

// GetFields returns the whitespace separated fields of the first line.
func (p *Parser) GetFields(path string) ([]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("file %q is empty", path)
	}
	return strings.Fields(lines[0]), nil
}

// GetUints parses count unsigned integers from the first line, starting at
// field offset. The line must hold at least offset+count fields.
func (p *Parser) GetUints(path string, offset, count int) ([]uint64, error) {
	fields, err := p.GetFields(path)
	if err != nil {
		return nil, err
	}
	if len(fields) < offset+count {
		return nil, fmt.Errorf("file %q: want %d fields, have %d", path, offset+count, len(fields))
	}

	out := make([]uint64, count)
	for i := range out {
		v, err := strconv.ParseUint(fields[offset+i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("file %q field %d: %w", path, offset+i, err)
		}
		out[i] = v
	}
	return out, nil
}

// GetFloat parses the field at index idx of the first line as a float.
func (p *Parser) GetFloat(path string, idx int) (float64, error) {
	fields, err := p.GetFields(path)
	if err != nil {
		return 0, err
	}
	if idx >= len(fields) {
		return 0, fmt.Errorf("file %q: no field %d", path, idx)
	}
	v, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0, fmt.Errorf("file %q field %d: %w", path, idx, err)
	}
	slog.Debug("read counter", slog.String("path", path), slog.Float64("value", v))
	return v, nil
}
