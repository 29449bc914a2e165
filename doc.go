// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package hwheel implements a hierarchical timer wheel: a data structure
// for scheduling, canceling, rescheduling and firing a large population
// of deadline-based events against a caller-advanced logical clock.
//
// The wheel has no notion of wall-clock time and no internal
// concurrency; the caller drives it by supplying tick deltas via
// Advance. It is optimised for workloads where most scheduled events
// are canceled or rescheduled long before they fire.
package hwheel

const NAME = "hwheel"

var BuildTags []string
