// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

import (
	"sync"
	"time"

	"github.com/intuitivelabs/timestamp"
)

// Driver ticks a Wheel off the wall clock. It is a convenience layered
// on top of the core wheel, not part of it: a Wheel never needs a
// Driver, and nothing in this file touches wheel-internal state other
// than through Wheel's public methods.
//
// A Driver owns exactly one goroutine, which is the only goroutine ever
// allowed to touch its Wheel; callers wanting to Schedule or Cancel
// events on a driven wheel must do so from inside a callback running on
// that goroutine (or stop the Driver first). This mirrors the
// mandatory single-threaded use of Wheel itself (see DESIGN.md).
type Driver struct {
	w            *Wheel
	tickDuration time.Duration

	refTS    timestamp.TS
	refTicks Ticks
	lastTick timestamp.TS
	badTime  int

	cancel chan struct{}
	wg     sync.WaitGroup
}

// NewDriver creates a Driver that advances w by one tick every
// tickDuration of wall-clock time.
func NewDriver(w *Wheel, tickDuration time.Duration) *Driver {
	return &Driver{w: w, tickDuration: tickDuration}
}

// Start begins ticking d's wheel in a background goroutine. No event
// will ever fire on the driven wheel until Start is called.
func (d *Driver) Start() {
	d.cancel = make(chan struct{})
	d.lastTick = timestamp.Now()
	d.refTS = d.lastTick
	d.refTicks = d.w.Now()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if DBGon() {
			DBG("starting driver with tick %s\n", d.tickDuration)
		}
		ticker := time.NewTicker(d.tickDuration)
		defer ticker.Stop()
		for {
			select {
			case <-d.cancel:
				return
			case _, ok := <-ticker.C:
				if !ok {
					return
				}
				d.tick()
			}
		}
	}()
}

// Shutdown stops the ticking goroutine and waits for it to exit. It
// does not touch the Wheel itself, which remains exactly as advanced as
// it was at the last completed tick.
func (d *Driver) Shutdown() {
	if d.cancel != nil {
		close(d.cancel)
	}
	d.wg.Wait()
}

// ticksFor converts a wall-clock duration into a whole number of wheel
// ticks and the leftover remainder, rounding down.
func (d *Driver) ticksFor(dur time.Duration) (uint64, time.Duration) {
	n := uint64(dur / d.tickDuration)
	return n, dur - time.Duration(n)*d.tickDuration
}

// tick is called once per wall-clock tickDuration. It detects clock
// regressions and large drift, then advances the wheel by however many
// whole ticks have actually elapsed.
func (d *Driver) tick() {
	now := timestamp.Now()
	if now.Before(d.lastTick) {
		d.badTime++
		if d.badTime > 10 {
			if ERRon() {
				ERR("recovering after time going backward %d times with %s\n",
					d.badTime, d.lastTick.Sub(now))
			}
			d.lastTick = now
			d.refTS = now
			d.refTicks = d.w.Now()
		}
		return
	}
	d.badTime = 0

	diff := now.Sub(d.lastTick)
	if diff < d.tickDuration {
		return
	}
	n, rest := d.ticksFor(diff)
	d.lastTick = now.Add(-rest)

	if DBGon() {
		runTime := now.Sub(d.refTS)
		runTicks := d.w.Now().Sub(d.refTicks).Val()
		expected := time.Duration(runTicks) * d.tickDuration
		if runTime > expected+d.tickDuration {
			DBG("driver: running slow: %s behind after %d ticks\n",
				runTime-expected, runTicks)
		} else if runTicks > 0 && runTime < expected-d.tickDuration {
			DBG("driver: running fast: %s ahead after %d ticks\n",
				expected-runTime, runTicks)
		}
	}

	if err := d.w.Advance(n); err != nil {
		if ERRon() {
			ERR("driver: Advance(%d) failed: %v\n", n, err)
		}
	}
}
