package main

// Turns raw request bytes into raw response bytes. This is the whole brain of
// the server: every query gets a single A record pointing at whatever the
// address source hands us, no matter what name or type was asked for.

import (
	"fmt"
	"net"

	"github.com/miekg/dns"
)

// AnswerTtl is the fixed TTL, in seconds, stamped on every answer record.
const AnswerTtl = 600

// AddressSource supplies the answer address for a query. *AddressPool is the
// real implementation; tests swap in deterministic fakes.
type AddressSource interface {
	Sample() net.IP
}

// Respond decodes one DNS request and builds the wire-format response for it.
// Only the first question is answered; extra questions and non-A query types
// are ignored on purpose, the client gets an A record regardless. No bytes
// are returned on error - the caller logs and drops the datagram.
func Respond(request []byte, source AddressSource) ([]byte, error) {
	req := &dns.Msg{}
	if err := req.Unpack(request); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRequest, err)
	}
	if len(req.Question) == 0 {
		return nil, ErrNoQuestion
	}
	question := req.Question[0]

	msg := &dns.Msg{}
	msg.SetReply(req)
	// always answer as a standard query, whatever the request claimed to be
	msg.Opcode = dns.OpcodeQuery
	msg.Rcode = dns.RcodeSuccess
	msg.Question = []dns.Question{question}
	msg.Answer = []dns.RR{
		&dns.A{
			Hdr: dns.RR_Header{
				Name:   question.Name,
				Rrtype: dns.TypeA,
				Class:  dns.ClassINET,
				Ttl:    AnswerTtl,
			},
			A: source.Sample(),
		},
	}

	response, err := msg.Pack()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncodeResponse, err)
	}
	return response, nil
}
