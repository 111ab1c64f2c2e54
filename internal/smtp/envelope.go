package smtp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

// Envelope is the SMTP envelope of a raw message
type Envelope struct {
	From       string
	Recipients []string
	// Data is the message as transmitted, without its Bcc header
	Data []byte
}

// ReadEnvelope extracts the sender from the From (or Sender) header and
// the recipients from the To, Cc and Bcc headers
func ReadEnvelope(raw []byte) (*Envelope, error) {
	br := bufio.NewReader(bytes.NewReader(raw))
	h, err := textproto.ReadHeader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read message header: %w", err)
	}
	header := mail.Header{Header: message.Header{Header: h}}

	env := &Envelope{}
	for _, key := range []string{"Sender", "From"} {
		addrs, err := header.AddressList(key)
		if err != nil {
			return nil, fmt.Errorf("invalid %s header: %w", key, err)
		}
		if len(addrs) > 0 {
			env.From = addrs[0].Address
			break
		}
	}

	seen := make(map[string]bool)
	for _, key := range []string{"To", "Cc", "Bcc"} {
		addrs, err := header.AddressList(key)
		if err != nil {
			return nil, fmt.Errorf("invalid %s header: %w", key, err)
		}
		for _, addr := range addrs {
			if seen[addr.Address] {
				continue
			}
			seen[addr.Address] = true
			env.Recipients = append(env.Recipients, addr.Address)
		}
	}
	if len(env.Recipients) == 0 {
		return nil, fmt.Errorf("message has no recipient")
	}

	h.Del("Bcc")
	var buf bytes.Buffer
	if err := textproto.WriteHeader(&buf, h); err != nil {
		return nil, fmt.Errorf("failed to write message header: %w", err)
	}
	if _, err := io.Copy(&buf, br); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	env.Data = buf.Bytes()

	return env, nil
}
