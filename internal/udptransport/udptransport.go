// Package udptransport sends a single DNS query over UDP and reads back
// one response, lifted out of the teacher's cmd/dnsquery into a package
// both CLI front ends share.
package udptransport

import (
	"fmt"
	"net"
	"time"

	"github.com/zigdig/zigdig/internal/pool"
)

// DefaultRecvBufferSize is large enough for the non-EDNS0, non-TCP
// responses this package's non-goals leave as the only kind it handles;
// RFC 1035 §2.3.4 caps a UDP message at 512 bytes, this leaves headroom.
const DefaultRecvBufferSize = 2048

// recvBufPool reuses default-sized receive buffers across queries, since a
// CLI invocation that falls back across several --dns servers allocates
// one per attempt.
var recvBufPool = pool.New(func() []byte {
	return make([]byte, DefaultRecvBufferSize)
})

// Query sends req to server and returns the raw response bytes, or an
// error if the server doesn't answer within timeout. server is a
// "host:port" address; callers resolving from resolv.conf should append
// ":53" themselves.
func Query(server string, req []byte, timeout time.Duration, recvBufferSize int) ([]byte, error) {
	if recvBufferSize <= 0 {
		recvBufferSize = DefaultRecvBufferSize
	}

	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", server, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %q: %w", server, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	if _, err := conn.Write(req); err != nil {
		return nil, fmt.Errorf("writing query to %q: %w", server, err)
	}

	var buf []byte
	pooled := recvBufferSize == DefaultRecvBufferSize
	if pooled {
		buf = recvBufPool.Get()
		defer recvBufPool.Put(buf)
	} else {
		buf = make([]byte, recvBufferSize)
	}

	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("reading response from %q: %w", server, err)
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}
