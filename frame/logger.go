// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package frame

import "log"

// Logger is the narrow logging seam frame lifecycle transitions are
// reported through. The standard library *log.Logger satisfies it
// directly; tests and the CLI may substitute a recording stub.
type Logger interface {
	Printf(format string, args ...any)
}

// discardLogger is used whenever a Frame is built without an explicit
// Logger, so LogTransition never needs a nil check.
type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

var defaultLogger Logger = discardLogger{}

// LogTransition reports a lifecycle state change through f's logger, or
// silently does nothing if none was configured.
func (f *Frame) LogTransition(from, to State) {
	f.logger().Printf("frame %p: %v -> %v", f, from, to)
}

func (f *Frame) logger() Logger {
	if f.Logger == nil {
		return defaultLogger
	}
	return f.Logger
}

// NewStandardLogger returns a Logger backed by the standard library's
// log package, the way the teacher's interpreter reports run
// statistics via plain log.Printf calls.
func NewStandardLogger(prefix string) Logger {
	return log.New(log.Writer(), prefix, log.LstdFlags)
}
