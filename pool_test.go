package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddressPoolRange(t *testing.T) {
	for prefix := 1; prefix <= 30; prefix++ {
		cidr := fmt.Sprintf("10.0.0.0/%d", prefix)
		pool, err := NewAddressPool(cidr)
		require.NoError(t, err, "could not build pool from [%s]", cidr)
		assert.Equal(t, uint32(1)<<uint(32-prefix), pool.Size(), "wrong range for [%s]", cidr)
	}
}

func TestNewAddressPoolRejectsTinyRanges(t *testing.T) {
	for _, cidr := range []string{"192.168.0.0/31", "192.168.0.1/32", "0.0.0.0/0"} {
		pool, err := NewAddressPool(cidr)
		assert.Nil(t, pool, "got a pool back for [%s]", cidr)
		assert.True(t, errors.Is(err, ErrRangeTooSmall), "expected range error for [%s], got [%v]", cidr, err)
	}
}

func TestNewAddressPoolRejectsGarbage(t *testing.T) {
	cidrs := []string{
		"",
		"not a cidr",
		"192.168.0.0",
		"192.168.0.0/33",
		"300.0.0.0/8",
		"2001:db8::/32",
	}
	for _, cidr := range cidrs {
		pool, err := NewAddressPool(cidr)
		assert.Nil(t, pool, "got a pool back for [%s]", cidr)
		assert.True(t, errors.Is(err, ErrInvalidNetwork), "expected network error for [%s], got [%v]", cidr, err)
	}
}

// every sample has to land strictly inside the block, and over enough draws
// every usable offset should show up at a roughly uniform rate
func TestSampleBoundsAndSpread(t *testing.T) {
	pool := buildSeededPool(t, "192.167.1.0/24", 1)

	trials := 100000
	counts := make(map[uint32]int)
	for i := 0; i < trials; i++ {
		ip := pool.Sample().To4()
		require.NotNil(t, ip, "sample returned a non-IPv4 address")
		offset := binary.BigEndian.Uint32(ip) - pool.base
		require.True(t, offset >= 1 && offset <= pool.size-2,
			"sampled offset [%d] outside usable range [1, %d]", offset, pool.size-2)
		counts[offset]++
	}

	// 254 usable offsets, ~394 draws each; anything outside a generous band
	// around that means the distribution is badly skewed
	expected := trials / int(pool.size-2)
	for offset := uint32(1); offset <= pool.size-2; offset++ {
		count := counts[offset]
		assert.Greater(t, count, expected/2, "offset [%d] badly underrepresented", offset)
		assert.Less(t, count, expected*2, "offset [%d] badly overrepresented", offset)
	}
}

func TestSampleNeverReturnsBoundaries(t *testing.T) {
	// the smallest legal pool has exactly two usable addresses
	pool := buildSeededPool(t, "10.1.2.0/30", 7)
	for i := 0; i < 1000; i++ {
		ip := pool.Sample()
		s := ip.String()
		assert.NotEqual(t, "10.1.2.0", s, "sampled the network address")
		assert.NotEqual(t, "10.1.2.3", s, "sampled the topmost address")
	}
}

func TestSampleWideBlock(t *testing.T) {
	pool := buildSeededPool(t, "192.167.0.0/16", 3)
	base := pool.base
	for i := 0; i < 1000; i++ {
		ip := pool.Sample().To4()
		v := binary.BigEndian.Uint32(ip)
		require.True(t, v >= base+1 && v <= base+pool.size-2,
			"sample [%s] outside 192.167.0.1-192.167.255.254", ip)
	}
}
