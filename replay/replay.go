// Package replay provides a Watcher that replays captured advertisement
// events from a file, standing in for a platform adapter. Events are
// delivered from the watcher's own goroutine, like a platform callback
// thread, so the full decode/filter/dedup pipeline is exercised without
// hardware.
package replay

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/blescan/blescan"
)

// A Watcher replays raw advertisement events, one every delay. After the
// capture is exhausted it keeps "scanning" (delivering nothing) until
// stopped, as a real watcher would.
type Watcher struct {
	blescan.StateMachine

	events []blescan.RawEvent
	delay  time.Duration

	mu       sync.Mutex
	recv     func(blescan.RawEvent)
	stopped  func(error)
	done     chan struct{}
	stopOnce sync.Once
}

// New returns a Watcher that replays events, delivering one every delay.
func New(events []blescan.RawEvent, delay time.Duration) *Watcher {
	return &Watcher{
		events: events,
		delay:  delay,
		done:   make(chan struct{}),
	}
}

// Load reads a capture from r: one event per line in the form
// "addr,rssi,type,hexdata". Blank lines and #-comments are ignored.
func Load(r io.Reader) ([]blescan.RawEvent, error) {
	var events []blescan.RawEvent
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.SplitN(text, ",", 4)
		if len(parts) != 4 {
			return nil, errors.Errorf("line %d: want addr,rssi,type,hexdata", line)
		}
		addr, err := blescan.ParseAddr(parts[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		rssi, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: rssi", line)
		}
		typ, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 0, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: advertisement type", line)
		}
		data, err := hex.DecodeString(strings.TrimSpace(parts[3]))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: data", line)
		}
		events = append(events, blescan.RawEvent{
			Address: addr.Uint(),
			RSSI:    int16(rssi),
			Type:    byte(typ),
			Data:    data,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "can't read capture")
	}
	return events, nil
}

// LoadFile reads a capture file, like Load.
func LoadFile(path string) ([]blescan.RawEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't open capture")
	}
	defer f.Close()
	return Load(f)
}

// SetActiveScan is accepted for interface completeness; a replay delivers
// the capture either way.
func (w *Watcher) SetActiveScan(bool) error {
	return nil
}

// Subscribe registers the two callback slots.
func (w *Watcher) Subscribe(recv func(blescan.RawEvent), stopped func(error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.recv != nil {
		return errors.New("already subscribed")
	}
	w.recv, w.stopped = recv, stopped
	return nil
}

// Unsubscribe deregisters both callbacks.
func (w *Watcher) Unsubscribe() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.recv == nil {
		return errors.New("not subscribed")
	}
	w.recv, w.stopped = nil, nil
	return nil
}

// Start begins delivery from the watcher's own goroutine.
func (w *Watcher) Start() error {
	if err := w.Transition(blescan.Started); err != nil {
		return err
	}
	go w.run()
	return nil
}

// Stop requests the replay to stop.
func (w *Watcher) Stop() error {
	if w.Status() == blescan.Started {
		if err := w.Transition(blescan.Stopping); err != nil {
			return err
		}
	}
	w.stopOnce.Do(func() { close(w.done) })
	return nil
}

func (w *Watcher) run() {
	for _, e := range w.events {
		select {
		case <-w.done:
			w.finish(nil)
			return
		case <-time.After(w.delay):
		}
		w.mu.Lock()
		recv := w.recv
		w.mu.Unlock()
		if recv != nil {
			e.Timestamp = time.Now()
			recv(e)
		}
	}
	<-w.done
	w.finish(nil)
}

// finish moves the machine to its terminal state and fires the stopped
// callback; a non-nil err marks the stop as an abort.
func (w *Watcher) finish(err error) {
	next := blescan.Stopped
	if err != nil {
		next = blescan.Aborted
	}
	if terr := w.Transition(next); terr != nil {
		// Already terminal; nothing left to report.
		return
	}
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped != nil {
		stopped(err)
	}
}
