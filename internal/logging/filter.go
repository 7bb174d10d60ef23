// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ModuleFieldName is the event field per-module levels are matched against.
const ModuleFieldName = "module"

// ModuleLevels maps module names to the minimum level logged for them.
// Modules that are not listed use Default.
type ModuleLevels struct {
	Default zerolog.Level
	Modules map[string]zerolog.Level
}

// ParseModuleLevels parses a string such as "error;rpc=debug". A bare level
// or "*=level" sets the default.
func ParseModuleLevels(s string) (*ModuleLevels, error) {
	l := &ModuleLevels{Default: zerolog.Disabled, Modules: map[string]zerolog.Level{}}
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		module, level, ok := strings.Cut(entry, "=")
		if !ok {
			module, level = "*", module
		}

		lvl, err := zerolog.ParseLevel(strings.TrimSpace(level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", entry, err)
		}

		module = strings.TrimSpace(module)
		if module == "*" {
			l.Default = lvl
		} else {
			l.Modules[module] = lvl
		}
	}
	return l, nil
}

// Lowest returns the lowest level of any module, which is the level the
// logger itself must be set to.
func (l *ModuleLevels) Lowest() zerolog.Level {
	lowest := l.Default
	for _, lvl := range l.Modules {
		if lvl < lowest {
			lowest = lvl
		}
	}
	return lowest
}

// Allow returns true if an event of the given level from the given module
// should be written.
func (l *ModuleLevels) Allow(level zerolog.Level, module string) bool {
	min, ok := l.Modules[module]
	if !ok {
		min = l.Default
	}
	return level >= min
}

// ParseLogLevel parses a level string such as "error;rpc=debug". If the
// string names modules, w is wrapped in a [FilterWriter] that applies
// the per-module levels and the returned level is the lowest one mentioned.
func ParseLogLevel(s string, w io.Writer) (string, io.Writer, error) {
	if !strings.Contains(s, "=") {
		return s, w, nil
	}

	levels, err := ParseModuleLevels(s)
	if err != nil {
		return "", nil, err
	}

	w = FilterWriter{
		Out: w,
		Predicate: func(level zerolog.Level, event map[string]interface{}) bool {
			module, _ := event[ModuleFieldName].(string)
			return levels.Allow(level, module)
		},
	}
	return levels.Lowest().String(), w, nil
}

// FilterWriter drops events the predicate rejects. Events must be JSON.
type FilterWriter struct {
	Out       io.Writer
	Predicate func(zerolog.Level, map[string]interface{}) bool
}

var _ zerolog.LevelWriter = FilterWriter{}

func (w FilterWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w FilterWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	var event map[string]interface{}
	err := json.NewDecoder(bytes.NewReader(p)).Decode(&event)
	if err != nil {
		return 0, fmt.Errorf("decode log event: %w", err)
	}

	if level == zerolog.NoLevel {
		if s, ok := event[zerolog.LevelFieldName].(string); ok {
			level, _ = zerolog.ParseLevel(s)
		}
	}

	if w.Predicate != nil && !w.Predicate(level, event) {
		return len(p), nil
	}
	return w.Out.Write(p)
}
