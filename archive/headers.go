package archive

import (
	"bufio"
	"bytes"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

// Headers are the fields used to build the filename
type Headers struct {
	Subject string
	From    string
}

// ParseHeaders reads the header section of a raw message only: the body is never parsed.
// A missing or undecodable subject is replaced by NoSubject.
func ParseHeaders(raw []byte) Headers {
	headers := Headers{
		Subject: NoSubject,
	}
	header, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil && header.Len() == 0 {
		return headers
	}
	mailHeader := mail.Header{}
	mailHeader.Header.Header = header

	subject, err := mailHeader.Subject()
	if err == nil && subject != "" {
		headers.Subject = subject
	}
	if addresses, err := mailHeader.AddressList("From"); err == nil && len(addresses) > 0 {
		headers.From = addresses[0].Address
		if addresses[0].Name != "" {
			headers.From = addresses[0].Name
		}
	} else if from, err := mailHeader.Text("From"); err == nil {
		headers.From = from
	}
	return headers
}
