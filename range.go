// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

// ScheduleInRange schedules e to fire at some tick within [start, end]
// ticks from now (both relative to w.Now()), choosing the coarsest slot
// boundary available in that window so the event is as likely as
// possible to be swept by a coarse-level drain instead of cascading all
// the way to the finest level. start and end are both relative deltas,
// start must be nonzero and no greater than end, or ErrInvalidRange is
// returned.
//
// If e is already scheduled to fire within [start, end] of now, it is
// left untouched.
func ScheduleInRange(w *Wheel, e *Event, start, end uint64) error {
	if start == 0 || start > end {
		return ErrInvalidRange
	}

	if e.Active() {
		cur := e.ScheduledAt().Sub(w.Now()).Val()
		if cur >= start && cur <= end {
			return nil
		}
	}

	bestDelta := end
	for k := 1; k <= NumLevels; k++ {
		mask := ^uint64(0) << uint(k*WidthBits)
		if start&mask != end&mask {
			continue
		}
		candidate := end & (mask >> WidthBits)
		if candidate >= start {
			bestDelta = candidate
		}
	}

	return w.Schedule(e, bestDelta)
}
