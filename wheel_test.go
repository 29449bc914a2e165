// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

import "testing"

func TestWheelScheduleZeroDelta(t *testing.T) {
	w := newTestWheel()
	e := NewEvent(func() {})
	if err := w.Schedule(e, 0); err != ErrZeroDelta {
		t.Fatalf("Schedule with delta 0 should return ErrZeroDelta, got %v\n", err)
	}
}

func TestWheelCancelBeforeFire(t *testing.T) {
	w := newTestWheel()
	fired := false
	e := NewEvent(func() { fired = true })
	if err := w.Schedule(e, 3); err != nil {
		t.Fatalf("Schedule failed: %s\n", err)
	}
	e.Cancel()
	if err := w.Advance(10); err != nil {
		t.Fatalf("Advance failed: %s\n", err)
	}
	if fired {
		t.Fatalf("canceled event must not fire\n")
	}
}

func TestWheelAdvanceOrdersEvents(t *testing.T) {
	w := newTestWheel()
	var order []int
	mk := func(n int) Callback { return func() { order = append(order, n) } }

	a := NewEvent(mk(1))
	b := NewEvent(mk(2))
	c := NewEvent(mk(3))
	if err := w.Schedule(a, 1); err != nil {
		t.Fatalf("Schedule a: %s\n", err)
	}
	if err := w.Schedule(b, 2); err != nil {
		t.Fatalf("Schedule b: %s\n", err)
	}
	if err := w.Schedule(c, 2); err != nil {
		t.Fatalf("Schedule c: %s\n", err)
	}
	if err := w.Advance(2); err != nil {
		t.Fatalf("Advance failed: %s\n", err)
	}
	if len(order) != 3 || order[0] != 1 {
		t.Fatalf("unexpected firing order: %v\n", order)
	}
}

func TestWheelRescheduleFromCallback(t *testing.T) {
	w := newTestWheel()
	count := 0
	var e *Event
	e = NewEvent(func() {
		count++
		if count < 3 {
			w.Schedule(e, 1)
		}
	})
	if err := w.Schedule(e, 1); err != nil {
		t.Fatalf("Schedule failed: %s\n", err)
	}
	for i := 0; i < 3; i++ {
		if err := w.Advance(1); err != nil {
			t.Fatalf("Advance failed: %s\n", err)
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 firings, got %d\n", count)
	}
}

func TestWheelAdvanceBoundedPausesAndResumes(t *testing.T) {
	w := newTestWheel()
	fired := 0
	for i := 0; i < 5; i++ {
		e := NewEvent(func() { fired++ })
		if err := w.Schedule(e, 1); err != nil {
			t.Fatalf("Schedule failed: %s\n", err)
		}
	}

	done, err := w.AdvanceBounded(1, 2)
	if err != nil {
		t.Fatalf("AdvanceBounded failed: %s\n", err)
	}
	if done {
		t.Fatalf("AdvanceBounded should not report done with budget 2 and 5 events\n")
	}
	if fired != 2 {
		t.Fatalf("expected exactly 2 events fired, got %d\n", fired)
	}

	if _, err := w.AdvanceBounded(1, 1); err != ErrNotContinuation {
		t.Fatalf("resuming a paused tick with nonzero delta should fail, got %v\n", err)
	}

	done, err = w.AdvanceBounded(0, 10)
	if err != nil {
		t.Fatalf("resuming AdvanceBounded failed: %s\n", err)
	}
	if !done {
		t.Fatalf("resuming with enough budget should finish the tick\n")
	}
	if fired != 5 {
		t.Fatalf("expected all 5 events fired after resuming, got %d\n", fired)
	}
}

// TestWheelAdvanceBoundedCrossLevelFourCallSequence reproduces the
// budget-boundary case where two events cascade in from a coarser level
// and a third is already due on the finest level, all in the same tick,
// with max_execute == 1: firing the last event a call's budget allows
// must still report "paused", and only a following call that performs
// zero work may report "done". A call that collapses firing the final
// event with reporting done would report done on the third call, and
// never exercise the dedicated fourth call.
func TestWheelAdvanceBoundedCrossLevelFourCallSequence(t *testing.T) {
	w := newTestWheel()

	var fired []string
	a := NewEvent(func() { fired = append(fired, "a") })
	b := NewEvent(func() { fired = append(fired, "b") })
	c := NewEvent(func() { fired = append(fired, "c") })

	// a and b cascade in from level 1 (delta >= NumSlots).
	if err := w.Schedule(a, NumSlots); err != nil {
		t.Fatalf("Schedule a failed: %s\n", err)
	}
	if err := w.Schedule(b, NumSlots); err != nil {
		t.Fatalf("Schedule b failed: %s\n", err)
	}

	// Advance to one tick short of NumSlots without waking anything, so
	// level 1 never wraps and a, b stay exactly where they landed.
	if err := w.Advance(NumSlots - 1); err != nil {
		t.Fatalf("Advance failed: %s\n", err)
	}
	if len(fired) != 0 {
		t.Fatalf("nothing should have fired before the boundary tick, got %v\n", fired)
	}

	// c lands directly on the finest level, due at the same absolute
	// tick a and b will cascade down to.
	if err := w.Schedule(c, 1); err != nil {
		t.Fatalf("Schedule c failed: %s\n", err)
	}

	results := []bool{}
	run := func(delta uint64) bool {
		done, err := w.AdvanceBounded(delta, 1)
		if err != nil {
			t.Fatalf("AdvanceBounded failed: %s\n", err)
		}
		results = append(results, done)
		return done
	}

	run(1)         // call 1: fires the first coarse event, budget exhausted
	run(0)         // call 2: fires the second coarse event, budget exhausted
	run(0)         // call 3: fires the finest-level event, budget exhausted
	done := run(0) // call 4: nothing left to fire

	want := []bool{false, false, false, true}
	for i, got := range results {
		if got != want[i] {
			t.Fatalf("call %d: done = %v, want %v (full sequence %v)\n",
				i+1, got, want[i], results)
		}
	}
	if !done {
		t.Fatalf("4th call should report the tick fully drained\n")
	}
	if len(fired) != 3 {
		t.Fatalf("expected exactly 3 events fired across the sequence, got %v\n", fired)
	}
}

func TestWheelTicksToNextEvent(t *testing.T) {
	w := newTestWheel()
	e := NewEvent(func() {})
	if err := w.Schedule(e, 42); err != nil {
		t.Fatalf("Schedule failed: %s\n", err)
	}
	if got := w.TicksToNextEvent(1000); got != 42 {
		t.Fatalf("TicksToNextEvent = %d, want 42\n", got)
	}
}

func TestWheelTicksToNextEventZeroWhenPaused(t *testing.T) {
	w := newTestWheel()
	for i := 0; i < 3; i++ {
		e := NewEvent(func() {})
		if err := w.Schedule(e, 1); err != nil {
			t.Fatalf("Schedule failed: %s\n", err)
		}
	}
	if done, err := w.AdvanceBounded(1, 1); err != nil || done {
		t.Fatalf("expected a paused partial advance, done=%v err=%v\n", done, err)
	}
	if got := w.TicksToNextEvent(1000); got != 0 {
		t.Fatalf("TicksToNextEvent while paused should be 0, got %d\n", got)
	}
}
