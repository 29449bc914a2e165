// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package hwheel

import (
	"errors"
)

var ErrZeroDelta = errors.New("schedule called with a zero delta")
var ErrTicksTooHigh = errors.New("schedule called with a delta too high to compare reliably against other ticks")
var ErrNotContinuation = errors.New("advance called with a non-zero delta while a partial tick is outstanding")
var ErrZeroAdvance = errors.New("advance called with a zero delta outside a partial-tick continuation")
var ErrInvalidRange = errors.New("schedule_in_range called with start == 0 or start > end")
