package blescan

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blescan/blescan/gap"
)

// event builds an Event from raw advertising data, the way the callback
// path does.
func event(addr Addr, data []byte) Event {
	return Event{
		Advertisement: gap.DecodeAdvertisement(gap.DecodeSections(data)),
		Addr:          addr,
	}
}

func named(addr Addr, name string) Event {
	b := append([]byte{byte(len(name) + 1), byte(gap.CompleteName)}, name...)
	return event(addr, b)
}

func withServices(addr Addr, uuids ...byte) Event {
	b := append([]byte{byte(len(uuids) + 1), byte(gap.AllUUID16)}, uuids...)
	return event(addr, b)
}

func TestFilterNil(t *testing.T) {
	var f *Filter
	assert.True(t, f.Matches(named("FA:BD:60:D2:11:3A", "Gopher")))
}

func TestFilterEmpty(t *testing.T) {
	f, err := NewFilter(FilterConfig{})
	require.NoError(t, err)
	assert.True(t, f.Matches(named("FA:BD:60:D2:11:3A", "Gopher")))
	assert.True(t, f.Matches(event("FA:BD:60:D2:11:3A", nil)))
}

func TestFilterAddress(t *testing.T) {
	f, err := NewFilter(FilterConfig{Address: "fabd60d2113a"})
	require.NoError(t, err)
	assert.True(t, f.Matches(named("FA:BD:60:D2:11:3A", "Gopher")), "address values normalize before matching")
	assert.False(t, f.Matches(named("FA:BD:60:D2:11:3B", "Gopher")))
}

func TestFilterAddressPattern(t *testing.T) {
	f, err := NewFilter(FilterConfig{AddressPattern: regexp.MustCompile(`^FA:BD:`)})
	require.NoError(t, err)
	assert.True(t, f.Matches(named("FA:BD:60:D2:11:3A", "")))
	assert.False(t, f.Matches(named("60:D2:FA:BD:11:3A", "")))
}

func TestFilterName(t *testing.T) {
	f, err := NewFilter(FilterConfig{Name: "Gopher"})
	require.NoError(t, err)
	assert.True(t, f.Matches(named("FA:BD:60:D2:11:3A", "Gopher")))
	assert.False(t, f.Matches(named("FA:BD:60:D2:11:3A", "gopher")))
	assert.False(t, f.Matches(event("FA:BD:60:D2:11:3A", nil)), "a nameless event is an ordinary non-match")
}

func TestFilterNamePattern(t *testing.T) {
	f, err := NewFilter(FilterConfig{NamePattern: regexp.MustCompile(`(?i)^gopher`)})
	require.NoError(t, err)
	assert.True(t, f.Matches(named("FA:BD:60:D2:11:3A", "Gopher-42")))
	assert.False(t, f.Matches(named("FA:BD:60:D2:11:3A", "Rodent")))
}

func TestFilterServices(t *testing.T) {
	f, err := NewFilter(FilterConfig{Services: []string{"0x180A"}})
	require.NoError(t, err)
	assert.True(t, f.Matches(withServices("FA:BD:60:D2:11:3A", 0x0A, 0x18)), "short filter forms match expanded advertised UUIDs")
	assert.True(t, f.Matches(withServices("FA:BD:60:D2:11:3A", 0x0A, 0x18, 0x0F, 0x18)), "extra advertised services don't hurt")
	assert.False(t, f.Matches(withServices("FA:BD:60:D2:11:3A", 0x0F, 0x18)))
	assert.False(t, f.Matches(named("FA:BD:60:D2:11:3A", "Gopher")), "no advertised services never satisfies a services filter")
}

func TestFilterServicesAll(t *testing.T) {
	f, err := NewFilter(FilterConfig{Services: []string{"180A", "180F"}})
	require.NoError(t, err)
	assert.True(t, f.Matches(withServices("FA:BD:60:D2:11:3A", 0x0A, 0x18, 0x0F, 0x18, 0x00, 0x18)))
	assert.False(t, f.Matches(withServices("FA:BD:60:D2:11:3A", 0x0A, 0x18)), "every filter entry must be advertised")
}

func TestFilterServicePattern(t *testing.T) {
	f, err := NewFilter(FilterConfig{ServicePatterns: []*regexp.Regexp{regexp.MustCompile(`^0000180[af]-`)}})
	require.NoError(t, err)
	assert.True(t, f.Matches(withServices("FA:BD:60:D2:11:3A", 0x0A, 0x18)))
	assert.False(t, f.Matches(withServices("FA:BD:60:D2:11:3A", 0x00, 0x18)))
}

func TestFilterAllDimensions(t *testing.T) {
	f, err := NewFilter(FilterConfig{Address: "FA:BD:60:D2:11:3A", NamePattern: regexp.MustCompile(`^Go`)})
	require.NoError(t, err)
	assert.True(t, f.Matches(named("FA:BD:60:D2:11:3A", "Gopher")))
	assert.False(t, f.Matches(named("FA:BD:60:D2:11:3A", "Rodent")))
	assert.False(t, f.Matches(named("FA:BD:60:D2:11:3B", "Gopher")))
}

func TestNewFilterErrors(t *testing.T) {
	_, err := NewFilter(FilterConfig{Address: "garbage"})
	assert.Error(t, err, "malformed address fails at construction")

	_, err = NewFilter(FilterConfig{Services: []string{"xyz"}})
	assert.Error(t, err, "malformed service uuid fails at construction")

	_, err = NewFilter(FilterConfig{Name: "Gopher", NamePattern: regexp.MustCompile(`Go`)})
	assert.Error(t, err, "exact name and name pattern are mutually exclusive")

	_, err = NewFilter(FilterConfig{Address: "FA:BD:60:D2:11:3A", AddressPattern: regexp.MustCompile(`FA`)})
	assert.Error(t, err, "exact address and address pattern are mutually exclusive")
}
