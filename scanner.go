// Package blescan consumes raw Bluetooth LE advertisement events from a
// platform watcher, decodes their GAP payloads, applies a device filter
// and yields a deduplicated live stream of matching devices.
package blescan

import (
	"sync"
	"time"

	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/blescan/blescan/gap"
)

var logger = log.New("scan")

// DefaultDuration bounds a scan when no duration option is given.
const DefaultDuration = 5 * time.Second

const (
	defaultPollInterval = 10 * time.Millisecond
	defaultQueueSize    = 64
)

// A Scanner is one scan session over a platform watcher: it decodes raw
// advertisement events, filters them, deduplicates by address and exposes
// the matches as a lazy FIFO sequence. Emission order is first-match
// arrival order; re-sightings of an already-seen address are dropped
// silently, never merged (see Device). A Scanner is single-pass: once its
// sequence ends it cannot be restarted, and a new scan requires a new
// Scanner.
type Scanner struct {
	w        Watcher
	filter   *Filter
	duration time.Duration
	active   bool
	interval time.Duration
	queue    int

	// chEvt hands matches from the platform callback thread to the
	// consumer goroutine; seen is touched only by the consumer.
	chEvt chan Event
	out   chan Device
	seen  map[Addr]bool

	mu      sync.Mutex
	started bool
	stopped bool
	reason  error // platform stop reason, set from the stopped callback
	err     error
}

// NewScanner returns a Scanner over w. The watcher is not touched until
// Scan is called.
func NewScanner(w Watcher, opts ...Option) (*Scanner, error) {
	s := &Scanner{
		w:        w,
		duration: DefaultDuration,
		active:   true,
		interval: defaultPollInterval,
		queue:    defaultQueueSize,
		seen:     make(map[Addr]bool),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, errors.Wrap(err, "can't configure scanner")
		}
	}
	s.chEvt = make(chan Event, s.queue)
	s.out = make(chan Device)
	return s, nil
}

// Scan starts the watcher and returns the live sequence of matching
// devices. Items appear incrementally as they are discovered. The channel
// is closed when the configured duration elapses, the first match is
// emitted under a negative duration, ctx is cancelled, Stop is called, or
// the watcher aborts; consult Err afterwards to distinguish an abort from
// a normal end of scan.
func (s *Scanner) Scan(ctx context.Context) (<-chan Device, error) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil, ErrRescan
	}
	s.started = true
	s.mu.Unlock()

	if err := s.w.SetActiveScan(s.active); err != nil {
		return nil, errors.Wrap(err, "can't set scanning mode")
	}
	if err := s.w.Subscribe(s.received, s.watcherStopped); err != nil {
		return nil, errors.Wrap(err, "can't subscribe to watcher")
	}
	if err := s.w.Start(); err != nil {
		s.unsubscribe()
		return nil, errors.Wrap(err, "can't start watcher")
	}

	// The platform start is asynchronous; don't poll for emissions until
	// the status has left Created.
	for s.w.Status() == Created {
		time.Sleep(s.interval)
	}

	var timer *time.Timer
	if s.duration >= 0 {
		timer = time.AfterFunc(s.duration, s.Stop)
	}
	go s.loop(ctx, timer)
	return s.out, nil
}

// Discover runs the scan to completion and returns every discovered
// device keyed by address: the blocking bulk variant of Scan for callers
// that don't need the live sequence.
func (s *Scanner) Discover(ctx context.Context) (map[Addr]Device, error) {
	ch, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}
	found := make(map[Addr]Device)
	for d := range ch {
		found[d.Addr] = d
	}
	return found, s.Err()
}

// Stop requests the platform watcher to stop. It is safe to call multiple
// times and after the watcher has already stopped; the sequence still
// drains matches queued before the stop took effect.
func (s *Scanner) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()
	if s.w.Status().Terminal() {
		return
	}
	if err := s.w.Stop(); err != nil {
		logger.Warn("can't stop watcher", "err", err.Error())
	}
}

// Err reports how the scan ended: nil after a normal stop or
// cancellation, an error caused by ErrAborted after a platform scanning
// failure. It is meaningful once the channel returned by Scan is closed.
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// received runs on the platform callback thread. It decodes and filters
// the raw event and hands any match to the consumer through the queue; it
// must not touch the seen-address map or any other consumer state.
func (s *Scanner) received(raw RawEvent) {
	e := Event{
		Advertisement: gap.DecodeAdvertisement(gap.DecodeSections(raw.Data)),
		Type:          AdvType(raw.Type),
		Addr:          AddrFromUint(raw.Address),
		RSSI:          raw.RSSI,
		Timestamp:     raw.Timestamp,
	}
	for _, d := range e.Advertisement.Diagnostics {
		logger.Debug("decode diagnostic", "addr", e.Addr.String(), "diag", d)
	}
	if !s.filter.Matches(e) {
		if logger.IsDebug() {
			logger.Debug("ignore", "addr", e.Addr.String())
		}
		return
	}
	select {
	case s.chEvt <- e:
	default:
		logger.Warn("match dropped, queue full", "addr", e.Addr.String())
	}
}

// watcherStopped runs on the platform callback thread.
func (s *Scanner) watcherStopped(err error) {
	s.mu.Lock()
	s.reason = err
	s.mu.Unlock()
	if err != nil {
		logger.Warn("watcher stopped", "err", err.Error())
	}
}

// loop is the consumer: it drains the queue, deduplicates and emits until
// the watcher reaches a terminal state, then drains whatever was queued
// before the stop and closes the output.
func (s *Scanner) loop(ctx context.Context, timer *time.Timer) {
	defer close(s.out)
	defer s.teardown(timer)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	done := ctx.Done()

	for {
		// Status is read before draining so matches queued ahead of a
		// stop are still delivered.
		st := s.w.Status()
	drain:
		for {
			select {
			case e := <-s.chEvt:
				if !s.emit(ctx, e) {
					s.finish(s.awaitTerminal())
					return
				}
			default:
				break drain
			}
		}
		if st.Terminal() {
			s.finish(st)
			return
		}
		select {
		case <-done:
			done = nil
			s.Stop()
		case <-tick.C:
		}
	}
}

// emit delivers e to the caller unless its address was already seen. It
// reports false when the session should emit nothing further.
func (s *Scanner) emit(ctx context.Context, e Event) bool {
	if s.seen[e.Addr] {
		return true
	}
	s.seen[e.Addr] = true
	d := Device{Addr: e.Addr, Name: e.Advertisement.LocalName, Event: e}
	select {
	case s.out <- d:
	case <-ctx.Done():
		s.Stop()
		return false
	}
	if s.duration < 0 {
		// Negative duration: the first match ends the scan.
		s.Stop()
		return false
	}
	return true
}

// awaitTerminal blocks, in bounded sleeps, until the watcher reaches a
// terminal state, so the platform stop handshake completes before the
// session is torn down.
func (s *Scanner) awaitTerminal() WatcherStatus {
	for {
		st := s.w.Status()
		if st.Terminal() {
			return st
		}
		time.Sleep(s.interval)
	}
}

// finish records the terminal outcome. An abort is a failure of the scan,
// reported distinctly from a normal end of sequence.
func (s *Scanner) finish(st WatcherStatus) {
	if st != Aborted {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reason != nil {
		s.err = errors.Wrap(ErrAborted, s.reason.Error())
		return
	}
	s.err = ErrAborted
}

// teardown releases the stop timer and deregisters the callbacks. A
// deregistration failure is logged, not fatal: the scan result stands.
func (s *Scanner) teardown(timer *time.Timer) {
	if timer != nil {
		timer.Stop()
	}
	s.unsubscribe()
}

func (s *Scanner) unsubscribe() {
	if err := s.w.Unsubscribe(); err != nil {
		logger.Warn("can't deregister callbacks", "err", err.Error())
	}
}
