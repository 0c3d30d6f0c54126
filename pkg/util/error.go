// pkg/util/error.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/rugby110/icarous/pkg/log"
)

// ErrorLogger accumulates the preconditions that configuration validation
// rejects so that all of them can be reported at once rather than just the
// first. It never panics and never aborts validation early; the caller
// decides what to do with an errors that have been collected (for kinematic
// bands, that means falling back to an invalid configuration rather than
// propagating the errors to the caller).
type ErrorLogger struct {
	errors []string
}

func (e *ErrorLogger) ErrorString(s string, args ...interface{}) {
	e.errors = append(e.errors, fmt.Sprintf(s, args...))
}

func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, err.Error())
}

func (e *ErrorLogger) HaveErrors() bool {
	return e != nil && len(e.errors) > 0
}

func (e *ErrorLogger) PrintErrors(lg *log.Logger) {
	// Two loops so they aren't interleaved with logging to stdout
	if lg != nil {
		for _, err := range e.errors {
			lg.Errorf("%+v", err)
		}
	}
	for _, err := range e.errors {
		fmt.Fprintln(os.Stderr, err)
	}
}

func (e *ErrorLogger) String() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.errors, "\n")
}
