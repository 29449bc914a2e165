// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

// WidthBits is the number of bits of delta each wheel level covers: a
// level has 2^WidthBits slots, and is WidthBits bits coarser than the
// level below it.
const WidthBits = 8

const (
	NumSlots = 1 << WidthBits
	Mask     = NumSlots - 1

	// NumLevels is ceil(64/WidthBits): enough levels to cover the full
	// 64-bit tick horizon.
	NumLevels = (64 + WidthBits - 1) / WidthBits
)

// level is one ring of NumSlots slots. Level 0 is the finest (core)
// level, whose slots represent single ticks; level i's slots each span
// 256^i ticks. coarser points to the next level out (nil at the
// outermost level); core always points at level 0 (nil on level 0
// itself, which doubles as the "is this the finest level" test).
type level struct {
	idx     uint8
	now     uint64
	slots   [NumSlots]slot
	coarser *level
	core    *level
}

func (lv *level) init(idx uint8, core *level) {
	lv.idx = idx
	lv.core = core
}

// schedule links e so that it fires delta ticks from lv's present
// position. Called on the core level, it also stamps e's absolute
// expiry; coarser levels never re-stamp it. If delta does not fit in
// this level's span, it recurses outward with a correction term that
// accounts for this level's own progress into its current span.
func (lv *level) schedule(e *Event, delta uint64) {
	if lv.core == nil {
		e.expire = NewTicks(lv.now + delta)
	}

	if delta >= NumSlots {
		lv.coarser.schedule(e, (delta+(lv.now&Mask))>>WidthBits)
		return
	}

	idx := (lv.now + delta) & Mask
	e.relink(&lv.slots[idx])
}

// drainCurrent pops every event out of lv's current slot, executing it
// directly (on the core level, or on a coarser level whose boundary has
// been reached) or re-scheduling it onto the core level (the cascade
// case). The budget is checked before each pop, never after: a call
// that fires its last available unit of budget reports false (paused)
// even if the slot happens to be empty afterwards; true is reported only
// when the slot is found empty while budget remains. This keeps a
// budget-exhausting call
// and a genuinely-done call distinguishable from the caller's side.
func (lv *level) drainCurrent(budget *int) bool {
	s := &lv.slots[lv.now&Mask]
	for {
		if *budget <= 0 {
			return false
		}
		if s.head == nil {
			return true
		}
		e := s.popEvent()
		if lv.core == nil {
			*budget--
			e.callback()
			continue
		}
		if NewTicks(lv.core.now).GE(e.expire) {
			*budget--
			e.callback()
		} else {
			lv.core.schedule(e, e.expire.Val()-lv.core.now)
		}
	}
}

// ticksToNextEvent finds the smallest delta, capped by the caller's
// horizon, until some scheduled event fires. base is the core level's
// current tick (the only "now" that absolute expiries are ever compared
// against); min is the best (smallest) absolute expiry found so far,
// pre-seeded by the caller with now+max.
func (lv *level) ticksToNextEvent(base uint64, min uint64) uint64 {
	for i := 0; i < NumSlots; i++ {
		idx := (lv.now + 1 + uint64(i)) & Mask

		if idx == 0 && lv.coarser != nil {
			ownSlotHasEvents := lv.core == nil && lv.slots[idx].head != nil
			if !ownSlotHasEvents {
				coarse := &lv.coarser.slots[(lv.coarser.now+1)&Mask]
				for e := coarse.head; e != nil; e = e.next {
					if e.expire.Val() < min {
						min = e.expire.Val()
					}
				}
			}
		}

		found := false
		for e := lv.slots[idx].head; e != nil; e = e.next {
			if e.expire.Val() < min {
				min = e.expire.Val()
			}
			found = true
		}
		if found {
			return min - base
		}
	}

	if lv.coarser != nil {
		return lv.coarser.ticksToNextEvent(base, min)
	}
	return min - base
}

// topWrapLevel returns the coarsest level index that must advance (and
// drain) this tick: level i wraps exactly when now's low i*WidthBits
// bits are all zero, which is equivalent to now being a multiple of
// 256^i. Levels wrap contiguously from 0 upward, so the scan can stop at
// the first level that does not wrap.
func topWrapLevel(now uint64) int {
	top := 0
	for i := 1; i < NumLevels; i++ {
		bits := uint64(1)<<uint(i*WidthBits) - 1
		if now&bits != 0 {
			break
		}
		top = i
	}
	return top
}
