package blescan

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// WatcherStatus is the lifecycle state of a platform advertisement
// watcher. The values match the platform's status codes.
type WatcherStatus int

// Watcher lifecycle states. Created is initial; Stopped and Aborted are
// terminal.
const (
	Created  WatcherStatus = 0
	Started  WatcherStatus = 1
	Stopping WatcherStatus = 2
	Stopped  WatcherStatus = 3
	Aborted  WatcherStatus = 4
)

var statusName = map[WatcherStatus]string{
	Created:  "Created",
	Started:  "Started",
	Stopping: "Stopping",
	Stopped:  "Stopped",
	Aborted:  "Aborted",
}

// String implements fmt.Stringer.
func (s WatcherStatus) String() string {
	if n, ok := statusName[s]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Terminal reports whether the watcher can make no further transitions.
func (s WatcherStatus) Terminal() bool {
	return s == Stopped || s == Aborted
}

// A RawEvent is one advertisement arrival as delivered by the platform
// callback: the 48-bit device address, the signal strength in dBm, the
// advertisement packet type code, the arrival time (with the local UTC
// offset) and the raw GAP data bytes.
type RawEvent struct {
	Address   uint64
	RSSI      int16
	Type      byte
	Timestamp time.Time
	Data      []byte
}

// A Watcher is a platform advertisement scan session. Start and Stop are
// asynchronous; completion is observed through Status. Subscribed handlers
// run on a platform-owned thread outside the caller's control, so anything
// they touch must be synchronized.
type Watcher interface {
	// Start begins scanning. The transition to Started may complete after
	// Start returns.
	Start() error

	// Stop requests the scan to stop. The stopped handler fires once the
	// watcher reaches a terminal state.
	Stop() error

	// Status returns the current lifecycle state.
	Status() WatcherStatus

	// SetActiveScan selects active scanning (scan requests are sent to
	// solicit scan response data) or passive listening. Must be called
	// before Start.
	SetActiveScan(active bool) error

	// Subscribe registers the two callback slots: recv for each raw
	// advertisement arrival, stopped for the terminal notification. The
	// stopped error is non-nil when scanning failed.
	Subscribe(recv func(RawEvent), stopped func(err error)) error

	// Unsubscribe deregisters both callbacks.
	Unsubscribe() error
}

// transitions is the watcher lifecycle edge set:
// Created → Started → {Stopping → Stopped} | Aborted.
var transitions = map[WatcherStatus][]WatcherStatus{
	Created:  {Started},
	Started:  {Stopping, Aborted},
	Stopping: {Stopped, Aborted},
}

// A StateMachine tracks a watcher's lifecycle and rejects transitions
// outside the edge set above. The zero value is in Created. Watcher
// implementations embed it; it is safe for use from multiple threads.
type StateMachine struct {
	mu     sync.Mutex
	status WatcherStatus
}

// Status returns the current state.
func (m *StateMachine) Status() WatcherStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Transition moves the machine to next, or returns an error caused by
// ErrInvalidState when the lifecycle has no such edge.
func (m *StateMachine) Transition(next WatcherStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range transitions[m.status] {
		if s == next {
			m.status = next
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidState, "%s -> %s", m.status, next)
}
