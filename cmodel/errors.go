// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"fmt"

	"github.com/pkg/errors"
)

// Severity tells callers whether a failure only aborts the current
// operation or means the model itself is corrupt.
type Severity int

const (
	// Drop aborts the load or lookup; the previous state stays usable.
	Drop Severity = iota
	// Fatal reports a broken invariant inside an already loaded model.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Drop:
		return "drop"
	case Fatal:
		return "fatal"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

var (
	ErrTooFew           = errors.New("lump has too few records")
	ErrTooMany          = errors.New("lump exceeds format limit")
	ErrBadIndex         = errors.New("index out of range")
	ErrBadPlaneType     = errors.New("bad plane type")
	ErrLeafZeroNotSolid = errors.New("leaf 0 is not CONTENTS_SOLID")
	ErrNoEmptyLeaf      = errors.New("map does not have an empty leaf")
	ErrBadVisibility    = errors.New("bad visibility lump")
	ErrNoRoomForBox     = errors.New("not enough room for box tree")
	ErrAsymmetricPortal = errors.New("area portal has no matching portal back")
	ErrBadModelName     = errors.New("bad inline model name")
	ErrBadLeaf          = errors.New("bad leaf number")
	ErrBadPortal        = errors.New("portal number beyond loaded portals")
	ErrReflooded        = errors.New("area reflooded")
)

// Error carries the severity and the operation that failed. The wrapped
// error is one of the Err* values or a bsp decoding error.
type Error struct {
	Severity Severity
	Map      string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	if e.Map == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Map, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the sentinel.
func (e *Error) Cause() error { return e.Err }

func dropError(name, op string, err error) error {
	return &Error{Severity: Drop, Map: name, Op: op, Err: err}
}

func dropf(name, op string, sentinel error, format string, args ...interface{}) error {
	return dropError(name, op, errors.Wrapf(sentinel, format, args...))
}

func fatalf(name, op string, sentinel error, format string, args ...interface{}) error {
	return &Error{Severity: Fatal, Map: name, Op: op, Err: errors.Wrapf(sentinel, format, args...)}
}

func severity(err error) (Severity, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Severity, true
}

// IsDrop reports whether err is a recoverable collision model error.
func IsDrop(err error) bool {
	s, ok := severity(err)
	return ok && s == Drop
}

// IsFatal reports whether err signals a corrupted model.
func IsFatal(err error) bool {
	s, ok := severity(err)
	return ok && s == Fatal
}
