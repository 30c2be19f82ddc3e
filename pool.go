package main

// Manages the block of addresses that query answers are drawn from

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"net"
)

// AddressPool represents the configured IPv4 block. It's built once at
// startup and shared read-only by every handler goroutine.
type AddressPool struct {
	// network address of the block, host byte order
	base uint32

	// number of addresses in the block
	size uint32

	// returns a uniform random int in [0, n); swappable so tests can seed it.
	// the default is the process-wide math/rand source, which is safe for
	// concurrent callers
	intn func(n int) int
}

// NewAddressPool parses a CIDR string like "192.168.0.0/16" into a pool.
// Blocks with fewer than 3 addresses (/31, /32) are rejected since there'd be
// no usable host address left once the network and topmost addresses are
// excluded. /0 is rejected too: the range wouldn't fit 32-bit arithmetic.
func NewAddressPool(cidr string) (*AddressPool, error) {
	ip, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse [%s]: %s", ErrInvalidNetwork, cidr, err)
	}
	if ip.To4() == nil {
		return nil, fmt.Errorf("%w: [%s] is not an IPv4 network", ErrInvalidNetwork, cidr)
	}

	prefix, bits := network.Mask.Size()
	if prefix == 0 && bits == 32 {
		// 1 << 32 overflows the range arithmetic
		return nil, fmt.Errorf("%w: prefix length 0 in [%s]", ErrRangeTooSmall, cidr)
	}
	size := uint32(1) << uint(32-prefix)
	if size <= 2 {
		return nil, fmt.Errorf("%w: [%s] has no usable host addresses", ErrRangeTooSmall, cidr)
	}

	return &AddressPool{
		base: binary.BigEndian.Uint32(network.IP.To4()),
		size: size,
		intn: rand.Intn,
	}, nil
}

// Sample draws one pseudo-random usable address from the block. The offset is
// uniform over [1, size-1), so the network address and the topmost address
// are never handed out.
func (p *AddressPool) Sample() net.IP {
	offset := uint32(p.intn(int(p.size-2))) + 1
	ip := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(ip, p.base+offset)
	return ip
}

// Size returns the total number of addresses in the block, usable or not.
func (p *AddressPool) Size() uint32 {
	return p.size
}
