package main

// The UDP service around the responder. One goroutine reads datagrams off
// the socket and hands each one to a handler goroutine, gated by a semaphore
// so a flood can't spawn unbounded work.

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
)

// the server wired up by main, shut down by the admin API
var activeServer *SinkholeServer

// Shutdown stops the running sinkhole server, if there is one.
func Shutdown() {
	if activeServer != nil {
		activeServer.Shutdown()
	}
}

func NewSinkholeServer(source AddressSource) *SinkholeServer {
	config := GetConfiguration()

	c := int64(config.ConcurrentQueries)
	if c == 0 {
		c = 10
	}

	return &SinkholeServer{
		source:   source,
		sem:      semaphore.NewWeighted(c),
		shutdown: make(chan struct{}),
	}
}

// Listen binds the UDP socket. Split out from Serve so tests can bind to an
// ephemeral port and read the address back before serving.
func (s *SinkholeServer) Listen(address string) error {
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return fmt.Errorf("could not resolve listen address [%s]: %s", address, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("could not listen on [%s]: %s", address, err)
	}
	s.conn = conn
	return nil
}

// LocalAddr returns the address the server is bound to.
func (s *SinkholeServer) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Serve reads datagrams until Shutdown closes the socket. Per-datagram
// failures are logged and dropped, they never take the loop down.
func (s *SinkholeServer) Serve() error {
	buf := make([]byte, dns.MinMsgSize)
	for {
		n, client, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-s.shutdown:
				return nil
			default:
			}
			Logger.Log(NewLogMessage(
				ERROR,
				LogContext{
					"what": "error reading datagram",
					"why":  err.Error(),
					"next": "continuing to serve",
				},
				nil,
			))
			continue
		}
		// the read buffer gets reused, handlers need their own copy
		request := make([]byte, n)
		copy(request, buf[:n])

		TotalDnsQueriesCounter.Inc()
		QueuedQueriesGauge.Inc()
		if err := s.sem.Acquire(context.TODO(), 1); err != nil {
			Logger.Log(NewLogMessage(
				CRITICAL,
				LogContext{
					"what": "failed to acquire semaphore allowing queries to progress",
					"why":  err.Error(),
					"next": "panicking",
				},
				nil,
			))
			panic(err)
		}
		go func(request []byte, client *net.UDPAddr) {
			defer s.sem.Release(1)
			QueuedQueriesGauge.Dec()
			s.handle(request, client)
		}(request, client)
	}
}

// ListenAndServe binds the configured address and serves until shutdown.
func (s *SinkholeServer) ListenAndServe(address string) error {
	if err := s.Listen(address); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown closes the socket, which unblocks Serve. Safe to call twice.
func (s *SinkholeServer) Shutdown() {
	s.closeOnce.Do(func() {
		close(s.shutdown)
		if s.conn != nil {
			s.conn.Close()
		}
	})
}

func (s *SinkholeServer) handle(request []byte, client *net.UDPAddr) {
	queryTimer := prometheus.NewTimer(QueryTimer)
	response, err := Respond(request, s.source)
	if err != nil {
		queryTimer.ObserveDuration()
		countDroppedQuery(err)
		Logger.Log(NewLogMessage(
			ERROR,
			LogContext{
				"what":   "dropping query",
				"client": client.String(),
				"why":    err.Error(),
				"next":   "no response will be sent",
			},
			func() string { return fmt.Sprintf("%v", request) },
		))
		return
	}

	if _, err := s.conn.WriteToUDP(response, client); err != nil {
		queryTimer.ObserveDuration()
		Logger.Log(NewLogMessage(
			ERROR,
			LogContext{
				"what":   "failed to send dns response",
				"client": client.String(),
				"why":    err.Error(),
			},
			nil,
		))
		return
	}
	duration := queryTimer.ObserveDuration()
	AnsweredQueriesCounter.Inc()
	logQuery(client, duration, response)
}

// bump the drop counter matching the responder error
func countDroppedQuery(err error) {
	switch {
	case errors.Is(err, ErrMalformedRequest):
		MalformedQueriesCounter.Inc()
	case errors.Is(err, ErrNoQuestion):
		EmptyQuestionCounter.Inc()
	case errors.Is(err, ErrEncodeResponse):
		EncodeFailuresCounter.Inc()
	}
}

// writes one line per answered query to the query log
func logQuery(client *net.UDPAddr, duration time.Duration, response []byte) {
	msg := &dns.Msg{}
	if err := msg.Unpack(response); err != nil {
		// we just packed these bytes, but don't let the log path blow up
		return
	}
	context := LogContext{
		"client":   client.String(),
		"domain":   msg.Question[0].Name,
		"duration": duration.String(),
	}
	if answer, ok := msg.Answer[0].(*dns.A); ok {
		context["answer"] = answer.A.String()
	}
	QueryLogger.Log(NewLogMessage(INFO, context, nil))
}
