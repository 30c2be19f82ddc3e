package main

// The full set of error kinds this server can produce. Pool errors are fatal
// at startup, everything else is scoped to a single datagram.

import "errors"

var (
	// ErrInvalidNetwork - the configured CIDR string didn't parse as an IPv4 network
	ErrInvalidNetwork = errors.New("invalid network")

	// ErrRangeTooSmall - the configured network has no usable host addresses
	ErrRangeTooSmall = errors.New("network range too small")

	// ErrMalformedRequest - the request bytes aren't a decodable DNS message
	ErrMalformedRequest = errors.New("malformed dns request")

	// ErrNoQuestion - the request decoded but carries zero questions
	ErrNoQuestion = errors.New("no question in dns request")

	// ErrEncodeResponse - the constructed response failed to serialize
	ErrEncodeResponse = errors.New("could not encode dns response")
)
