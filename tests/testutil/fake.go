// Package testutil provides testing utilities for the catalog service.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync/atomic"
)

// Fake provides generators for fake test data.
var Fake = &fakeGenerator{}

type fakeGenerator struct {
	counter atomic.Int64
}

// String generates a random string with the given prefix.
func (f *fakeGenerator) String(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, f.counter.Add(1), f.randomHex(4))
}

// ItemName generates a unique item name.
func (f *fakeGenerator) ItemName() string {
	adjectives := []string{"Red", "Small", "Heavy", "Quiet", "Rapid", "Spare", "Round", "Sturdy"}
	nouns := []string{"Widget", "Gadget", "Sprocket", "Bracket", "Valve", "Gear", "Hinge", "Spring"}
	return fmt.Sprintf("%s %s %d", f.randomChoice(adjectives), f.randomChoice(nouns), f.counter.Add(1))
}

// PriceCents generates a price between 1 and 100000 cents.
func (f *fakeGenerator) PriceCents() int64 {
	return f.randomInt64(1, 100001)
}

// Hex generates a random hex string of the given byte length.
func (f *fakeGenerator) Hex(byteLength int) string {
	return f.randomHex(byteLength)
}

// Helpers

func (f *fakeGenerator) randomHex(byteLength int) string {
	bytes := make([]byte, byteLength)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (f *fakeGenerator) randomChoice(choices []string) string {
	return choices[f.randomInt64(0, int64(len(choices)))]
}

func (f *fakeGenerator) randomInt64(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(hi-lo))
	return lo + n.Int64()
}
