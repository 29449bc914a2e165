// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

// Callback is invoked with no arguments and no return value when an
// Event fires. Anything the callback needs (the owning *Wheel, the
// *Event itself, application state) must be captured by the closure the
// caller builds the Callback from; the wheel never passes anything to
// it. Rescheduling, canceling other events, and scheduling new ones are
// all safe to do from inside a Callback.
type Callback func()

// Event is the per-timer handle. It is owned by the caller: the wheel
// never allocates one and never frees one. An Event must not be reused
// (copied into a new life) while still linked into a slot; destroying a
// linked Event without first canceling it corrupts the owning slot's
// list.
//
// Event embeds its own intrusive doubly-linked-list pointers and a
// back-reference to its current slot, so cancellation is O(1) without
// any auxiliary index: the wheel only ever holds non-owning pointers to
// events.
type Event struct {
	callback Callback
	expire   Ticks

	prev, next *Event
	slot       *slot
}

// NewEvent allocates and initializes an unlinked Event bound to cb.
// Most callers embed an Event in their own struct and call Init instead,
// to avoid the extra allocation.
func NewEvent(cb Callback) *Event {
	e := &Event{}
	e.Init(cb)
	return e
}

// Init (re-)initializes e, unlinked, bound to cb. Never call it on an
// Event that is still scheduled; Cancel it first.
func (e *Event) Init(cb Callback) {
	if e.slot != nil {
		BUG("Init called on a still-linked event %p\n", e)
	}
	*e = Event{callback: cb}
}

// Active reports whether e is currently linked into a slot.
func (e *Event) Active() bool {
	return e.slot != nil
}

// ScheduledAt returns the absolute tick e is scheduled to fire at. It is
// only meaningful while e is Active, or from within e's own callback
// (where e has already been unlinked but expire still holds the tick it
// fired at).
func (e *Event) ScheduledAt() Ticks {
	return e.expire
}

// Cancel detaches e from whatever slot it is currently in. It is
// idempotent and safe to call on an Event that is not scheduled, and
// safe to call from within any callback on this wheel (including e's
// own).
func (e *Event) Cancel() {
	e.relink(nil)
}

// relink detaches e from its current slot (if any) and attaches it to
// newSlot (or leaves it detached, if newSlot is nil). It is a no-op if
// newSlot is already e's current slot. Insertion is always at the head
// of newSlot's list, so repeated reschedules and cancellations never
// walk any list.
func (e *Event) relink(newSlot *slot) {
	if newSlot == e.slot {
		return
	}

	if e.slot != nil {
		if e.prev != nil {
			e.prev.next = e.next
		} else {
			e.slot.head = e.next
		}
		if e.next != nil {
			e.next.prev = e.prev
		}
	}

	if newSlot != nil {
		old := newSlot.head
		e.next = old
		if old != nil {
			old.prev = e
		}
		newSlot.head = e
	} else {
		e.next = nil
	}
	e.prev = nil
	e.slot = newSlot
}
