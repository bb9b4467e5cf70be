package console

import (
	"bytes"
	"io"
)

// crlfConn normalizes telnet line endings. Reads turn \r\n and bare \r into
// \n; writes turn \n into \r\n.
type crlfConn struct {
	rw io.ReadWriter
}

func newCRLFConn(rw io.ReadWriter) io.ReadWriter {
	return &crlfConn{rw: rw}
}

func (c *crlfConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		data := bytes.ReplaceAll(p[:n], []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
	}
	return n, err
}

// Write reports len(p) so callers never see the expanded size.
func (c *crlfConn) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	return len(p), err
}
