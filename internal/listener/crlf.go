package listener

import (
	"bytes"
	"io"
)

// crlfReadWriter normalizes client line endings to \n on reads and writes
// \n as \r\n. Telnet clients send \r\n; ssh clients without a PTY send \r.
type crlfReadWriter struct {
	rw io.ReadWriter

	// afterCR is set when the last byte read was a \r, so a \n starting the
	// next read belongs to the same line ending.
	afterCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &crlfReadWriter{rw: rw}
}

func (c *crlfReadWriter) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		if n == 0 {
			return 0, err
		}

		data := p[:n]
		if c.afterCR && data[0] == '\n' {
			data = data[1:]
		}
		c.afterCR = len(data) > 0 && data[len(data)-1] == '\r'

		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
		n = copy(p, data)
		if n > 0 || err != nil {
			return n, err
		}
	}
}

func (c *crlfReadWriter) Write(p []byte) (int, error) {
	converted := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.rw.Write(converted)
	// Callers expect the length they passed in.
	return len(p), err
}
