// Package domain contains the evolutionary core: constraint tracking,
// the insertion/deletion/modification engines, the fitness-function
// framework and the selection operator.
package domain

import "errors"

// ErrConstructionFailed marks recoverable mutation failures: no satisfying
// set of callees or parameters exists for the attempted change. Callers
// treat it as "this mutation attempt did not apply" and may retry with a
// different random choice.
var ErrConstructionFailed = errors.New("construction failed")

// ErrInvariant marks fatal violations caused by a buggy upstream
// collaborator: non-positive complexity, malformed descriptors past the
// catalog boundary, or a corrupted dependency structure. The current
// search run must abort loudly rather than continue with corrupted state.
var ErrInvariant = errors.New("invariant violation")

// InsertionError is the sentinel position signaling a failed insertion.
const InsertionError = -1
