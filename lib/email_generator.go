package lib

import (
	"fmt"
	"math/rand"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyz " +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 " +
	",./;'\\ \" []{}<>?:|!@£$%^&*()_+-= " +
	"\r\n\r\n\r\n "

const template = "From: %s\r\n" +
	"To: contact@example.org\r\n" +
	"Subject: %s\r\n" +
	"Date: Wed, 11 May 2016 14:31:59 +0000\r\n" +
	"Message-ID: <%d@localhost/>\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n%s"

const templateNoSubject = "From: %s\r\n" +
	"To: contact@example.org\r\n" +
	"Date: Wed, 11 May 2016 14:31:59 +0000\r\n" +
	"Message-ID: <%d@localhost/>\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n%s"

var seededRand *rand.Rand = rand.New(
	rand.NewSource(time.Now().UnixMilli()))

func stringWithCharset(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// GenerateEmail returns a message with a random body of up to maxSize bytes.
// An empty subject generates a message without a Subject header.
func GenerateEmail(from, subject string, uid uint32, maxSize int) []byte {
	length := 0
	if maxSize > 0 {
		length = seededRand.Intn(maxSize)
	}
	body := stringWithCharset(length, charset)
	if subject == "" {
		return []byte(fmt.Sprintf(templateNoSubject, from, uid, body))
	}
	return []byte(fmt.Sprintf(template, from, subject, uid, body))
}
