package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// NewEntropySeed reads a 32-bit seed from crypto/rand.
func NewEntropySeed() (uint32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// EntropySeed is NewEntropySeed with a clock-derived fallback.
func EntropySeed() uint32 {
	seed, err := NewEntropySeed()
	if err != nil {
		now := uint64(time.Now().UnixNano())
		return uint32(now ^ now>>32)
	}
	return seed
}
