// Package imaptest runs an in-memory IMAP server for unit tests
package imaptest

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/server"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

const (
	Username = "username"
	Password = "password"
	// InitialUID is the UID of the message pre-loaded in the INBOX of the memory backend
	InitialUID = 6
)

type Server struct {
	server *server.Server
	addr   string
	wg     sync.WaitGroup
}

// NewServer starts an IMAP server on a local port. It is stopped at the end of the test.
func NewServer(t *testing.T) *Server {
	t.Helper()

	imapServer := server.New(memory.New())
	// test server only: allow plain text authentication over non-encrypted connections
	imapServer.AllowInsecureAuth = true
	imapServer.Enable(deflateExtension{compress.NewExtension()})

	listener, err := nettest.NewLocalListener("tcp")
	require.NoError(t, err)

	s := &Server{
		server: imapServer,
		addr:   listener.Addr().String(),
	}
	t.Logf("Starting IMAP server at %s", s.addr)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = imapServer.Serve(listener)
	}()
	time.Sleep(50 * time.Millisecond)

	t.Cleanup(func() {
		_ = imapServer.Close()
		s.wg.Wait()
	})
	return s
}

// deflateExtension advertises the compression mechanism next to the COMPRESS capability,
// which is what the client looks for before sending the COMPRESS command
type deflateExtension struct {
	server.Extension
}

func (e deflateExtension) Capabilities(c server.Conn) []string {
	return []string{compress.Capability + "=" + compress.Deflate}
}

// Addr returns host:port of the server
func (s *Server) Addr() string {
	return s.addr
}

// CreateMailbox creates a new mailbox on the server
func (s *Server) CreateMailbox(t *testing.T, name string) {
	t.Helper()
	s.do(t, func(c *client.Client) {
		require.NoError(t, c.Create(name))
	})
}

// Append adds a message to the mailbox
func (s *Server) Append(t *testing.T, name string, body []byte, date time.Time, flags ...string) {
	t.Helper()
	s.do(t, func(c *client.Client) {
		require.NoError(t, c.Append(name, flags, date, bytes.NewBuffer(body)))
	})
}

// Flags returns the flags of every message in the mailbox, indexed by UID
func (s *Server) Flags(t *testing.T, name string) map[uint32][]string {
	t.Helper()
	flags := make(map[uint32][]string)
	s.do(t, func(c *client.Client) {
		status, err := c.Select(name, true)
		require.NoError(t, err)
		if status.Messages == 0 {
			return
		}
		seqset := new(imap.SeqSet)
		seqset.AddRange(1, status.Messages)
		messages := make(chan *imap.Message, 10)
		done := make(chan error, 1)
		go func() {
			done <- c.Fetch(seqset, []imap.FetchItem{imap.FetchUid, imap.FetchFlags}, messages)
		}()
		for msg := range messages {
			flags[msg.Uid] = msg.Flags
		}
		require.NoError(t, <-done)
	})
	return flags
}

func (s *Server) do(t *testing.T, action func(c *client.Client)) {
	t.Helper()
	c, err := client.Dial(s.addr)
	require.NoError(t, err)
	defer func() {
		_ = c.Logout()
	}()
	require.NoError(t, c.Login(Username, Password))
	action(c)
}
