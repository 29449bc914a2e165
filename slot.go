// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

// slot is one bucket of a wheel level: the head of a doubly-linked list
// of events scheduled for that slot's tick (or, for a coarser level, that
// slot's 256^level span). Slots are not independently addressable by
// callers; they only exist embedded in a level.
type slot struct {
	head *Event
}

// events peeks the head of the list without detaching anything.
func (s *slot) events() *Event {
	return s.head
}

// popEvent detaches and returns the head of the list, clearing the
// popped event's back-reference and next pointer. It must not be called
// on an empty slot.
func (s *slot) popEvent() *Event {
	e := s.head
	s.head = e.next
	if s.head != nil {
		s.head.prev = nil
	}
	e.next = nil
	e.slot = nil
	return e
}
