package remote

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/limitio"
	"github.com/creativeprojects/emldump/mailbox"
	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	"github.com/emersion/go-imap/client"
)

const rateLimitBurst = 4 * 1024

type Config struct {
	// ServerURL is host:port
	ServerURL           string
	Username            string
	Password            string
	DebugLogger         lib.Logger
	NoTLS               bool
	SkipTLSVerification bool
	// Compress enables the COMPRESS=DEFLATE extension when the server supports it
	Compress bool
	// RateLimit in bytes per second when reading messages, zero means unlimited
	RateLimit float64
	// ConnectTimeout limits the time to establish the connection, zero means no timeout
	ConnectTimeout time.Duration
}

// Imap is an authenticated session on an IMAP server
type Imap struct {
	client     *client.Client
	log        lib.Logger
	selected   *mailbox.Status
	rateLimit  float64
	compressed bool
}

func NewImap(cfg Config) (*Imap, error) {
	log := cfg.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	if cfg.ServerURL == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("missing information from Config object")
	}

	var imapClient *client.Client
	var err error
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	log.Printf("Connecting to server %s...", cfg.ServerURL)
	if cfg.NoTLS {
		imapClient, err = client.DialWithDialer(dialer, cfg.ServerURL)
	} else {
		tlsConfig := &tls.Config{}
		if cfg.SkipTLSVerification {
			tlsConfig.InsecureSkipVerify = true
		}
		imapClient, err = client.DialWithDialerTLS(dialer, cfg.ServerURL, tlsConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot connect to server %s: %w", cfg.ServerURL, err)
	}
	log.Print("Connected")

	if err := imapClient.Login(cfg.Username, cfg.Password); err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("%w: %s", lib.ErrAuth, err)
	}
	log.Printf("Logged in as %s", cfg.Username)

	if caps, err := imapClient.Capability(); err == nil {
		log.Printf("capabilities: %+v", caps)
	}

	session := &Imap{
		client:    imapClient,
		log:       log,
		rateLimit: cfg.RateLimit,
	}
	if cfg.Compress {
		session.enableCompression()
	}
	return session, nil
}

// enableCompression is best effort: the session stays usable without it
func (i *Imap) enableCompression() {
	compressClient := compress.NewClient(i.client)
	supported, err := compressClient.SupportCompress(compress.Deflate)
	if err != nil || !supported {
		i.log.Print("IMAP server does NOT support COMPRESS=DEFLATE extension")
		return
	}
	if err := compressClient.Compress(compress.Deflate); err != nil {
		i.log.Printf("cannot enable compression: %s", err)
		return
	}
	i.compressed = true
	i.log.Print("Compression enabled")
}

func (i *Imap) Compressed() bool {
	return i.compressed
}

// Close logs out and closes the connection
func (i *Imap) Close() error {
	i.log.Print("Closing connection")
	return i.client.Logout()
}

func (i *Imap) ListMailbox() ([]mailbox.Info, error) {
	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- i.client.List("", "*", mailboxes)
	}()

	i.log.Print("Listing mailboxes:")
	info := make([]mailbox.Info, 0, 10)
	for m := range mailboxes {
		i.log.Printf("* %q: %+v (delimiter = %q)", m.Name, m.Attributes, m.Delimiter)
		info = append(info, mailbox.Info{
			Attributes: m.Attributes,
			Delimiter:  m.Delimiter,
			Name:       m.Name,
		})
	}

	if err := <-done; err != nil {
		return nil, err
	}
	return info, nil
}

// SelectMailbox opens the mailbox in read-only mode (EXAMINE): flags are never changed on the server
func (i *Imap) SelectMailbox(info mailbox.Info) (*mailbox.Status, error) {
	i.log.Printf("Selecting mailbox %q", info.Name)
	status, err := i.client.Select(info.Name, true)
	if err != nil {
		return nil, err
	}
	i.selected = &mailbox.Status{
		Name:        status.Name,
		Flags:       status.Flags,
		Messages:    status.Messages,
		UidValidity: status.UidValidity,
		UidNext:     status.UidNext,
	}
	return i.selected, nil
}

// SearchMessages returns the UID of all the messages in the selected mailbox
func (i *Imap) SearchMessages() ([]mailbox.MessageID, error) {
	if i.selected == nil {
		return nil, lib.ErrNotSelected
	}
	uids, err := i.client.UidSearch(imap.NewSearchCriteria())
	if err != nil {
		return nil, err
	}
	ids := make([]mailbox.MessageID, len(uids))
	for index, uid := range uids {
		ids[index] = mailbox.MessageID(uid)
	}
	i.log.Printf("Search returned %d messages", len(ids))
	return ids, nil
}

// FetchMessage downloads the whole message without setting the \Seen flag.
// A rate limited read stops waiting when the context is cancelled.
func (i *Imap) FetchMessage(ctx context.Context, id mailbox.MessageID) (*mailbox.Message, error) {
	if i.selected == nil {
		return nil, lib.ErrNotSelected
	}
	seqset := new(imap.SeqSet)
	seqset.AddNum(uint32(id))

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchFlags, imap.FetchInternalDate, imap.FetchRFC822Size, imap.FetchUid}

	receiver := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- i.client.UidFetch(seqset, items, receiver)
	}()

	var message *mailbox.Message
	var readErr error
	// the channel must be drained until the command completes
	for msg := range receiver {
		if message != nil || msg.Uid != uint32(id) {
			// unsolicited update on another message
			continue
		}
		body := msg.GetBody(section)
		if body == nil {
			readErr = errors.New("server sent no message body")
			continue
		}
		data, err := io.ReadAll(i.limit(ctx, body))
		if err != nil {
			readErr = fmt.Errorf("cannot read message body: %w", err)
			continue
		}
		if msg.Size > 0 && len(data) != int(msg.Size) {
			i.log.Printf("message id=%s advertised as %d bytes but read %d bytes", id, msg.Size, len(data))
		}
		message = &mailbox.Message{
			ID:           id,
			Flags:        lib.StripRecentFlag(msg.Flags),
			InternalDate: msg.InternalDate,
			Size:         msg.Size,
			Body:         data,
		}
	}
	if err := <-done; err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}
	if message == nil {
		return nil, lib.ErrMessageNotFound
	}
	i.log.Printf("Received IMAP message uid=%s size=%d flags=%+v date=%q", id, len(message.Body), message.Flags, message.InternalDate)
	return message, nil
}

func (i *Imap) limit(ctx context.Context, body io.Reader) io.Reader {
	if i.rateLimit <= 0 {
		return body
	}
	reader := limitio.NewReaderContext(ctx, body)
	reader.SetRateLimit(i.rateLimit, rateLimitBurst)
	return reader
}

// UnselectMailbox closes the mailbox (CLOSE). The mailbox was opened read-only so nothing gets expunged.
func (i *Imap) UnselectMailbox() error {
	if i.selected == nil {
		return nil
	}
	i.selected = nil
	return i.client.Close()
}
