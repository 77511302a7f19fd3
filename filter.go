package blescan

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/blescan/blescan/uuid"
)

// A Matcher matches a string either exactly or against a compiled pattern.
type Matcher struct {
	exact   string
	pattern *regexp.Regexp
}

// NewMatcher returns an exact-string Matcher.
func NewMatcher(s string) *Matcher {
	return &Matcher{exact: s}
}

// NewPattern returns a pattern Matcher.
func NewPattern(re *regexp.Regexp) *Matcher {
	return &Matcher{pattern: re}
}

// Match reports whether s satisfies the matcher.
func (m *Matcher) Match(s string) bool {
	if m.pattern != nil {
		return m.pattern.MatchString(s)
	}
	return m.exact == s
}

// FilterConfig is the declarative filter surface. Every dimension is
// optional; a string field takes an exact value, the corresponding pattern
// field a compiled regular expression, and at most one of each pair may be
// set. Exact service entries accept 16-bit short forms ("180A", "0x180A")
// and full 128-bit forms; service patterns are matched against the
// canonical lowercase 128-bit string.
type FilterConfig struct {
	Address        string
	AddressPattern *regexp.Regexp

	Name        string
	NamePattern *regexp.Regexp

	Services        []string
	ServicePatterns []*regexp.Regexp
}

type serviceMatcher struct {
	exact   uuid.UUID // canonical 128-bit; nil when pattern is set
	pattern *regexp.Regexp
}

// A Filter selects advertisement events by address, local name and
// advertised services. Absent dimensions are vacuously true; a nil Filter
// matches every event.
type Filter struct {
	addr     *Matcher
	name     *Matcher
	services []serviceMatcher
}

// NewFilter validates cfg and compiles it into a Filter. A malformed
// address or service value fails here, naming the offending field, rather
// than at match time.
func NewFilter(cfg FilterConfig) (*Filter, error) {
	f := &Filter{}
	if cfg.Address != "" && cfg.AddressPattern != nil {
		return nil, errors.New("filter: address and address pattern are mutually exclusive")
	}
	if cfg.Address != "" {
		a, err := ParseAddr(cfg.Address)
		if err != nil {
			return nil, errors.Wrap(err, "filter: address")
		}
		f.addr = NewMatcher(a.String())
	}
	if cfg.AddressPattern != nil {
		f.addr = NewPattern(cfg.AddressPattern)
	}
	if cfg.Name != "" && cfg.NamePattern != nil {
		return nil, errors.New("filter: name and name pattern are mutually exclusive")
	}
	if cfg.Name != "" {
		f.name = NewMatcher(cfg.Name)
	}
	if cfg.NamePattern != nil {
		f.name = NewPattern(cfg.NamePattern)
	}
	for _, s := range cfg.Services {
		u, err := uuid.Parse(s)
		if err != nil {
			return nil, errors.Wrapf(err, "filter: service %q", s)
		}
		f.services = append(f.services, serviceMatcher{exact: u.To128()})
	}
	for _, re := range cfg.ServicePatterns {
		f.services = append(f.services, serviceMatcher{pattern: re})
	}
	return f, nil
}

// Matches reports whether e satisfies every present dimension. The
// services dimension requires each filter entry to match some advertised
// service; an event advertising no services never satisfies a non-empty
// services filter. An empty local name is an ordinary non-match, not an
// error.
func (f *Filter) Matches(e Event) bool {
	if f == nil {
		return true
	}
	if f.addr != nil && !f.addr.Match(e.Addr.String()) {
		return false
	}
	if f.name != nil && !f.name.Match(e.Advertisement.LocalName) {
		return false
	}
	if len(f.services) > 0 {
		advertised := e.Advertisement.Services
		if len(advertised) == 0 {
			return false
		}
		for _, want := range f.services {
			if !want.matchAny(advertised) {
				return false
			}
		}
	}
	return true
}

func (m serviceMatcher) matchAny(advertised []uuid.UUID) bool {
	for _, u := range advertised {
		if m.pattern != nil {
			if m.pattern.MatchString(u.String()) {
				return true
			}
			continue
		}
		if m.exact.Equal(u) {
			return true
		}
	}
	return false
}
