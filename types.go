package main

import (
	"net"
	"sync"

	"golang.org/x/sync/semaphore"
)

// SinkholeServer owns the UDP socket and fans datagrams out to handler
// goroutines. The address source is read-only after construction, so the
// handlers share it without locking.
type SinkholeServer struct {
	// where answer addresses come from
	source AddressSource

	// the listening socket
	conn *net.UDPConn

	// bounds the number of in-flight handlers
	sem *semaphore.Weighted

	// closed when Shutdown is called
	shutdown chan struct{}

	closeOnce sync.Once
}
