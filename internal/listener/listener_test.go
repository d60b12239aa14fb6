package listener

import (
	"bufio"
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/ssh"
)

type loopback struct {
	in  *strings.Reader
	out bytes.Buffer
}

func (l *loopback) Read(p []byte) (int, error)  { return l.in.Read(p) }
func (l *loopback) Write(p []byte) (int, error) { return l.out.Write(p) }

func TestCRLFReadWriter(t *testing.T) {
	tests := map[string]struct {
		in     string
		expIn  string
		write  string
		expOut string
	}{
		"telnet line endings": {
			in:     "look\r\n",
			expIn:  "look\n",
			write:  "Hall\nExits: north\n",
			expOut: "Hall\r\nExits: north\r\n",
		},
		"bare carriage return": {
			in:    "say hi\r",
			expIn: "say hi\n",
		},
		"unix line endings": {
			in:    "north\n",
			expIn: "north\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lb := &loopback{in: strings.NewReader(tt.in)}
			rw := newCRLFReadWriter(lb)

			got, err := io.ReadAll(rw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read", string(got), tt.expIn)

			n, err := io.WriteString(rw, tt.write)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "written", n, len(tt.write))
			testutil.AssertEqual(t, "output", lb.out.String(), tt.expOut)
		})
	}
}

// chunkedConn returns one chunk per Read.
type chunkedConn struct {
	chunks []string
}

func (c *chunkedConn) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}

func (c *chunkedConn) Write(p []byte) (int, error) { return len(p), nil }

func TestCRLFReadWriter_SplitLineEnding(t *testing.T) {
	rw := newCRLFReadWriter(&chunkedConn{chunks: []string{"look\r", "\nnorth\r", "\n", "say hi\r\n"}})

	got, err := io.ReadAll(rw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "read", string(got), "look\nnorth\nsay hi\n")
}

type echoRunner struct {
	err error
}

func (r *echoRunner) RunSession(ctx context.Context, conn io.ReadWriter) error {
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(conn, "you said: %s\n", strings.TrimSpace(line))
	if err != nil {
		return err
	}
	return r.err
}

func TestConnectionManager_AcceptConnection(t *testing.T) {
	lb := &loopback{in: strings.NewReader("hello\n")}
	NewConnectionManager(&echoRunner{err: fmt.Errorf("gone")}).AcceptConnection(context.Background(), lb)
	testutil.AssertEqual(t, "output", lb.out.String(), "you said: hello\n")
}

func TestSshListener_Session(t *testing.T) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := NewSshListener("127.0.0.1", 0, NewConnectionManager(&echoRunner{}), signer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.serve(ctx, ln) }()

	client, err := ssh.Dial("tcp", ln.Addr().String(), &ssh.ClientConfig{
		User:            "alice",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stdin, err := sess.StdinPipe()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sess.Shell(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := io.WriteString(stdin, "hello\r"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, err := bufio.NewReader(stdout).ReadString('\n')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", line, "you said: hello\r\n")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}
}
