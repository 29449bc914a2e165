// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

import "math"

// Wheel is a hierarchical timer wheel: NumLevels rings of NumSlots slots
// each, level i covering 256^i ticks per slot. It is not safe for
// concurrent use; callers needing concurrent access must serialize it
// themselves (see DESIGN.md).
type Wheel struct {
	levels [NumLevels]level

	// cursor is the index of the level currently being drained by an
	// in-progress AdvanceBounded call, or -1 when no advance is paused
	// mid-tick.
	cursor int
}

// NewWheel creates a Wheel whose present tick is start.
func NewWheel(start Ticks) *Wheel {
	w := &Wheel{cursor: -1}
	core := &w.levels[0]
	for i := range w.levels {
		w.levels[i].init(uint8(i), core)
		w.levels[i].now = start.Val() >> (uint(i) * WidthBits)
	}
	w.levels[0].core = nil
	for i := 0; i+1 < NumLevels; i++ {
		w.levels[i].coarser = &w.levels[i+1]
	}
	return w
}

// Now returns the wheel's current tick.
func (w *Wheel) Now() Ticks {
	return NewTicks(w.levels[0].now)
}

// Schedule links e to fire delta ticks from now. delta must be nonzero
// and below MaxTicksDiff, the same bound Ticks comparisons themselves
// rely on to stay wraparound-safe; ErrZeroDelta or ErrTicksTooHigh is
// returned otherwise.
func (w *Wheel) Schedule(e *Event, delta uint64) error {
	if delta == 0 {
		return ErrZeroDelta
	}
	if delta >= MaxTicksDiff {
		BUG("delta too high: %d ticks >= max %d\n", delta, uint64(MaxTicksDiff))
		return ErrTicksTooHigh
	}
	w.levels[0].schedule(e, delta)
	return nil
}

// Cancel detaches e, wherever it currently sits in the wheel. Equivalent
// to e.Cancel(); provided for symmetry with Schedule.
func (w *Wheel) Cancel(e *Event) {
	e.Cancel()
}

// Advance moves the wheel forward by delta ticks, running every
// callback whose expiry falls at or before the new tick. It is
// equivalent to AdvanceBounded with an unbounded budget.
func (w *Wheel) Advance(delta uint64) error {
	_, err := w.AdvanceBounded(delta, math.MaxInt)
	return err
}

// AdvanceBounded moves the wheel forward by delta ticks, running at most
// maxExecute callbacks before returning. If the budget runs out
// mid-tick, AdvanceBounded returns done=false and leaves the wheel
// paused at the tick it was draining; the next call must pass delta=0 to
// resume draining that same tick (ErrNotContinuation is returned for any
// other delta while paused). Once that tick fully drains, any remaining
// delta from the original call is not replayed automatically: callers
// wanting to advance further issue another AdvanceBounded call.
func (w *Wheel) AdvanceBounded(delta uint64, maxExecute int) (bool, error) {
	if w.cursor >= 0 {
		if delta != 0 {
			return false, ErrNotContinuation
		}
		return w.drainFrom(w.cursor, &maxExecute)
	}

	if delta == 0 {
		return true, ErrZeroAdvance
	}

	for ; delta > 0; delta-- {
		w.levels[0].now++
		top := topWrapLevel(w.levels[0].now)
		for i := 1; i <= top; i++ {
			w.levels[i].now++
		}

		done, _ := w.drainFrom(top, &maxExecute)
		if !done {
			return false, nil
		}
	}
	return true, nil
}

// drainFrom drains levels top, top-1, ..., 0 in that order (coarsest to
// finest), stopping and recording the cursor if the budget is exhausted
// partway through.
func (w *Wheel) drainFrom(top int, budget *int) (bool, error) {
	for i := top; i >= 0; i-- {
		if !w.levels[i].drainCurrent(budget) {
			w.cursor = i
			return false, nil
		}
	}
	w.cursor = -1
	return true, nil
}

// TicksToNextEvent returns how many ticks until the next scheduled
// event fires, capped at max. It returns 0 immediately if a previous
// AdvanceBounded call is paused mid-tick (outstanding events at the
// current tick have priority over any lookahead).
func (w *Wheel) TicksToNextEvent(max uint64) uint64 {
	if w.cursor >= 0 {
		return 0
	}
	base := w.levels[0].now
	return w.levels[0].ticksToNextEvent(base, base+max)
}
