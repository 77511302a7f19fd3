package blescan

import (
	"time"

	"github.com/pkg/errors"
)

// An Option is a configuration function for a Scanner.
type Option func(*Scanner) error

// OptFilter sets the device filter. Without it every event matches.
func OptFilter(f *Filter) Option {
	return func(s *Scanner) error {
		s.filter = f
		return nil
	}
}

// OptDuration sets the scan duration: the watcher is asked to stop that
// long after the scan starts. A negative duration instead stops the scan
// as soon as the first matching device has been emitted.
func OptDuration(d time.Duration) Option {
	return func(s *Scanner) error {
		s.duration = d
		return nil
	}
}

// OptActiveScan selects active scanning, which solicits scan response
// frames from advertisers. Active scanning is the default.
func OptActiveScan(active bool) Option {
	return func(s *Scanner) error {
		s.active = active
		return nil
	}
}

// OptPollInterval sets the granularity of the consumer's bounded waits:
// the watcher status poll and the wait for the scan to start.
func OptPollInterval(d time.Duration) Option {
	return func(s *Scanner) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		s.interval = d
		return nil
	}
}

// OptQueueSize sets the depth of the queue that hands matches from the
// platform callback thread to the consumer.
func OptQueueSize(n int) Option {
	return func(s *Scanner) error {
		if n <= 0 {
			return errors.New("queue size must be positive")
		}
		s.queue = n
		return nil
	}
}
