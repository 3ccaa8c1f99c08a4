package server

import (
	"errors"
	"net"
	"time"

	"github.com/tannerfokkens-maker/MacintoshCraft/session"
)

// pollDeadline bounds every non-blocking read/write attempt. Go's
// standard library has no WouldBlock return value the way §6's
// transport interface expects; a short deadline is the idiomatic Go
// equivalent of a non-blocking syscall, and a timeout on that deadline
// is translated back into session.ErrWouldBlock below.
const pollDeadline = time.Millisecond

// tcpConn adapts a net.Conn into session.Conn, translating Go's
// deadline-based non-blocking model into the WouldBlock-returning
// contract §6 specifies for the transport backend.
type tcpConn struct {
	nc net.Conn
}

func newTCPConn(nc net.Conn) *tcpConn {
	return &tcpConn{nc: nc}
}

func (c *tcpConn) Read(p []byte) (int, error) {
	if err := c.nc.SetReadDeadline(time.Now().Add(pollDeadline)); err != nil {
		return 0, err
	}
	n, err := c.nc.Read(p)
	if err != nil && isTimeout(err) {
		return n, session.ErrWouldBlock
	}
	return n, err
}

func (c *tcpConn) Write(p []byte) (int, error) {
	if err := c.nc.SetWriteDeadline(time.Now().Add(pollDeadline)); err != nil {
		return 0, err
	}
	n, err := c.nc.Write(p)
	if err != nil && isTimeout(err) {
		return n, session.ErrWouldBlock
	}
	return n, err
}

func (c *tcpConn) Close() error {
	return c.nc.Close()
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// listener wraps a net.Listener the same way tcpConn wraps a net.Conn:
// Accept is given a short deadline so the main loop's poll call never
// blocks waiting for a new connection (§5 "single-threaded, cooperative
// scheduling").
type listener struct {
	nl net.Listener
}

func listen(addr string) (*listener, error) {
	nl, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &listener{nl: nl}, nil
}

func (l *listener) accept() (*tcpConn, net.Addr, error) {
	type deadlineListener interface {
		SetDeadline(time.Time) error
	}
	if dl, ok := l.nl.(deadlineListener); ok {
		_ = dl.SetDeadline(time.Now().Add(pollDeadline))
	}
	nc, err := l.nl.Accept()
	if err != nil {
		if isTimeout(err) {
			return nil, nil, session.ErrWouldBlock
		}
		return nil, nil, err
	}
	return newTCPConn(nc), nc.RemoteAddr(), nil
}

func (l *listener) close() error {
	return l.nl.Close()
}

// yield is the host-callback hook §5 describes ("let the host do other
// work"). The standard-host implementation has no other work to
// interleave, so it is a no-op, and nothing calls it: a read or write
// that would block returns ErrWouldBlock and the tick loop carries on.
func yield() {}
