// util/error.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmp/nattrack/log"
)

// ErrorLogger accumulates validation errors along with context about what
// was being looked at when each one was found, so that validation can keep
// going and report everything that is wrong in one go.
type ErrorLogger struct {
	// Tracked via Push()/Pop() calls to remember what we're looking at if
	// an error is found.
	hierarchy []string
	// Errors to report, each prefixed with the hierarchy at the time.
	errors []error
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, fmt.Errorf("%s%w", e.prefix(), err))
}

func (e *ErrorLogger) prefix() string {
	if len(e.hierarchy) == 0 {
		return ""
	}
	return strings.Join(e.hierarchy, " / ") + ": "
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errors) > 0
}

func (e *ErrorLogger) LogErrors(lg *log.Logger) {
	for _, err := range e.errors {
		lg.Warnf("%v", err)
	}
}

// Err returns nil if no errors have been reported and otherwise returns
// a single error that joins all of them; errors.Is and errors.As see
// through to the reported errors.
func (e *ErrorLogger) Err() error {
	return errors.Join(e.errors...)
}
