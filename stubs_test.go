package main

import (
	"math/rand"
	"net"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// a source that always hands back the same address
type StubAddressSource struct {
	IP net.IP
}

func (s *StubAddressSource) Sample() net.IP {
	return s.IP
}

type MockAddressSource struct {
	mock.Mock
}

func (m *MockAddressSource) Sample() net.IP {
	ret := m.Called()
	ip, ok := ret.Get(0).(net.IP)
	if !ok {
		panic("mock source returned something that wasn't an IP")
	}
	return ip
}

// builds a pool whose random source is seeded, so tests are repeatable
func buildSeededPool(t *testing.T, cidr string, seed int64) *AddressPool {
	pool, err := NewAddressPool(cidr)
	require.NoError(t, err, "could not build pool from [%s]", cidr)
	rng := rand.New(rand.NewSource(seed))
	pool.intn = rng.Intn
	return pool
}
