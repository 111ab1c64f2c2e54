package types

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

// Flag is a backend-independent message flag
type Flag string

// Standard flags understood by every backend
const (
	FlagSeen     Flag = "seen"
	FlagAnswered Flag = "answered"
	FlagFlagged  Flag = "flagged"
	FlagDeleted  Flag = "deleted"
	FlagDraft    Flag = "draft"
)

// ParseFlag normalizes a user supplied flag name. Unknown names are kept
// as custom flags.
func ParseFlag(s string) Flag {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "\\")
	return Flag(s)
}

// ParseFlags parses a list of flag names
func ParseFlags(names []string) []Flag {
	flags := make([]Flag, 0, len(names))
	for _, name := range names {
		if f := ParseFlag(name); f != "" {
			flags = append(flags, f)
		}
	}
	return flags
}

// Folder represents an email folder/mailbox
type Folder struct {
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
}

// Envelope represents the summary of an email
type Envelope struct {
	ID          string    `json:"id"`
	MessageID   string    `json:"message_id"`
	Subject     string    `json:"subject"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Recipients  []string  `json:"recipients"`
	Date        time.Time `json:"date"`
	Flags       []Flag    `json:"flags,omitempty"`
}

// HasFlag reports whether the envelope carries the given flag
func (e *Envelope) HasFlag(flag Flag) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Message is a raw RFC 5322 message as returned by a backend
type Message struct {
	ID     string `json:"id"`
	Folder string `json:"folder"`
	Raw    []byte `json:"-"`
}

// ParseEnvelope reads the header of a raw message into an envelope.
// The body is never parsed.
func ParseEnvelope(id string, raw []byte) (*Envelope, error) {
	h, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to read message header: %w", err)
	}
	header := mail.Header{Header: message.Header{Header: h}}

	env := &Envelope{
		ID:         id,
		Recipients: []string{},
	}
	// Malformed optional headers are tolerated and left empty.
	env.Subject, _ = header.Subject()
	env.MessageID, _ = header.MessageID()
	env.Date, _ = header.Date()

	if from, err := header.AddressList("From"); err == nil && len(from) > 0 {
		env.SenderName = from[0].Name
		env.SenderEmail = from[0].Address
	}
	for _, key := range []string{"To", "Cc"} {
		addrs, err := header.AddressList(key)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			env.Recipients = append(env.Recipients, addr.Address)
		}
	}

	return env, nil
}
