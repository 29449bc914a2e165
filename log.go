// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

import (
	"github.com/intuitivelabs/slog"
)

// Log is the package's logger. Level defaults to warnings and errors
// only; use slog.SetLevel(&Log, slog.LDBG) for verbose cascade/schedule
// tracing.
var Log slog.Log = slog.New(slog.LWARN, 0, slog.LStdErr)

func DBGon() bool {
	return Log.DBGon()
}

func DBG(f string, a ...interface{}) {
	Log.DBG(f, a...)
}

func ERRon() bool {
	return Log.ERRon()
}

func ERR(f string, a ...interface{}) {
	Log.ERR(f, a...)
}

func WARNon() bool {
	return Log.WARNon()
}

func WARN(f string, a ...interface{}) {
	Log.WARN(f, a...)
}

// BUG reports a violated internal invariant. It does not stop execution:
// an invariant violation here is always a bug to fix, not a condition
// the caller can react to.
func BUG(f string, a ...interface{}) {
	Log.BUG(f, a...)
}

// PANIC reports and panics. Used only for precondition violations that
// are not recoverable: it is a programmer error to hit one of these.
func PANIC(f string, a ...interface{}) {
	Log.PANIC(f, a...)
}
