package archive

import (
	"testing"

	"github.com/creativeprojects/emldump/lib"
	"github.com/stretchr/testify/assert"
)

func TestParseHeaders(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Headers
	}{
		{
			name:     "simple",
			raw:      "From: contact@example.org\r\nSubject: Invoice: Q3/2024\r\n\r\nbody",
			expected: Headers{Subject: "Invoice: Q3/2024", From: "contact@example.org"},
		},
		{
			name:     "display name",
			raw:      "From: \"Billing Team\" <billing@example.com>\r\nSubject: hello\r\n\r\n",
			expected: Headers{Subject: "hello", From: "Billing Team"},
		},
		{
			name:     "no subject",
			raw:      "From: contact@example.org\r\n\r\nbody",
			expected: Headers{Subject: NoSubject, From: "contact@example.org"},
		},
		{
			name:     "empty subject",
			raw:      "From: contact@example.org\r\nSubject: \r\n\r\nbody",
			expected: Headers{Subject: NoSubject, From: "contact@example.org"},
		},
		{
			name:     "encoded words",
			raw:      "From: contact@example.org\r\nSubject: =?UTF-8?B?UsOpdW5pb24=?=\r\n\r\n",
			expected: Headers{Subject: "Réunion", From: "contact@example.org"},
		},
		{
			name:     "latin1 encoded words",
			raw:      "From: contact@example.org\r\nSubject: =?ISO-8859-1?Q?caf=E9?=\r\n\r\n",
			expected: Headers{Subject: "café", From: "contact@example.org"},
		},
		{
			name:     "unix line endings",
			raw:      "From: contact@example.org\nSubject: A little message, just for you\n\nHi there :)",
			expected: Headers{Subject: "A little message, just for you", From: "contact@example.org"},
		},
		{
			name:     "garbage",
			raw:      "this is not a message",
			expected: Headers{Subject: NoSubject},
		},
		{
			name:     "empty",
			raw:      "",
			expected: Headers{Subject: NoSubject},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, ParseHeaders([]byte(testCase.raw)))
		})
	}
}

func TestParseGeneratedHeaders(t *testing.T) {
	raw := lib.GenerateEmail("user@example.com", "generated", 1, 10000)
	assert.Equal(t, Headers{Subject: "generated", From: "user@example.com"}, ParseHeaders(raw))
}
