package blescan

import "github.com/pkg/errors"

// ErrInvalidAddr is returned when an address can't be reduced to 12 hex
// digits.
var ErrInvalidAddr = errors.New("invalid address")

// ErrAborted is the cause of the error reported by Scanner.Err when the
// platform watcher stopped because of a scanning failure, as opposed to a
// normal end of scan.
var ErrAborted = errors.New("watcher aborted")

// ErrRescan is returned when Scan is called on a Scanner that has already
// run. A scanner is single-pass; a new scan requires a new Scanner.
var ErrRescan = errors.New("scanner can't be reused")

// ErrInvalidState is the cause of errors returned for watcher state
// transitions that are not part of the lifecycle.
var ErrInvalidState = errors.New("invalid state transition")
