package imap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/emersion/go-imap"

	"github.com/brandon/mailctl/pkg/types"
)

// ListEnvelopes lists one page of envelopes, newest first
func (s *Session) ListEnvelopes(ctx context.Context, folder string, page, pageSize int) ([]types.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mbox, err := s.selectFolder(folder)
	if err != nil {
		return nil, err
	}

	seqSet, ok := pageSeqSet(mbox.Messages, page, pageSize)
	if !ok {
		return []types.Envelope{}, nil
	}

	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchFlags, imap.FetchInternalDate, imap.FetchUid}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)

	go func() {
		done <- s.client.Fetch(seqSet, items, messages)
	}()

	var fetched []*imap.Message
	for msg := range messages {
		fetched = append(fetched, msg)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch envelopes: %w", err)
	}

	sort.Slice(fetched, func(i, j int) bool {
		return fetched[i].SeqNum > fetched[j].SeqNum
	})

	envelopes := make([]types.Envelope, 0, len(fetched))
	for _, msg := range fetched {
		envelopes = append(envelopes, toEnvelope(msg))
	}
	return envelopes, nil
}

// pageSeqSet returns the sequence range of a page counted from the newest
// message. A pageSize of 0 selects every message.
func pageSeqSet(total uint32, page, pageSize int) (*imap.SeqSet, bool) {
	if total == 0 || page < 0 {
		return nil, false
	}

	seqSet := new(imap.SeqSet)
	if pageSize <= 0 {
		seqSet.AddRange(1, total)
		return seqSet, true
	}

	skip := uint64(page) * uint64(pageSize)
	if skip >= uint64(total) {
		return nil, false
	}
	hi := uint64(total) - skip
	lo := uint64(1)
	if hi > uint64(pageSize) {
		lo = hi - uint64(pageSize) + 1
	}
	seqSet.AddRange(uint32(lo), uint32(hi))
	return seqSet, true
}

// toEnvelope converts an IMAP message into our Envelope type
func toEnvelope(msg *imap.Message) types.Envelope {
	env := types.Envelope{
		ID:         strconv.FormatUint(uint64(msg.Uid), 10),
		Recipients: []string{},
		Flags:      fromIMAPFlags(msg.Flags),
	}

	if msg.Envelope != nil {
		env.MessageID = msg.Envelope.MessageId
		env.Subject = msg.Envelope.Subject
		env.Date = msg.Envelope.Date

		if len(msg.Envelope.From) > 0 {
			addr := msg.Envelope.From[0]
			env.SenderName = addr.PersonalName
			env.SenderEmail = addr.Address()
		}
		for _, to := range msg.Envelope.To {
			env.Recipients = append(env.Recipients, to.Address())
		}
		for _, cc := range msg.Envelope.Cc {
			env.Recipients = append(env.Recipients, cc.Address())
		}
	}
	if env.Date.IsZero() {
		env.Date = msg.InternalDate
	}

	return env
}

// GetMessages fetches full messages, marking them as seen
func (s *Session) GetMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error) {
	return s.fetchMessages(ctx, folder, ids, false)
}

// PeekMessages fetches full messages without changing their flags
func (s *Session) PeekMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error) {
	return s.fetchMessages(ctx, folder, ids, true)
}

// fetchMessages fetches the messages by UID and returns them in the order
// of ids
func (s *Session) fetchMessages(ctx context.Context, folder string, ids []string, peek bool) ([]types.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uids, err := parseUIDs(ids)
	if err != nil {
		return nil, err
	}

	if _, err := s.selectFolder(folder); err != nil {
		return nil, err
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	section := &imap.BodySectionName{Peek: peek}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, 10)
	done := make(chan error, 1)

	go func() {
		done <- s.client.UidFetch(seqSet, items, messages)
	}()

	bodies := make(map[uint32][]byte, len(uids))
	for msg := range messages {
		literal := msg.GetBody(section)
		if literal == nil {
			s.logger.WithField("uid", msg.Uid).Warn("Message body is missing")
			continue
		}
		raw, err := io.ReadAll(literal)
		if err != nil {
			s.logger.WithError(err).WithField("uid", msg.Uid).Error("Error reading literal")
			continue
		}
		bodies[msg.Uid] = raw
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	result := make([]types.Message, 0, len(ids))
	for i, uid := range uids {
		raw, ok := bodies[uid]
		if !ok {
			return nil, fmt.Errorf("message %s not found in folder %s", ids[i], folder)
		}
		result = append(result, types.Message{ID: ids[i], Folder: folder, Raw: raw})
	}
	return result, nil
}

// AddMessage appends a raw message to folder and returns its expected UID
func (s *Session) AddMessage(ctx context.Context, folder string, raw []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.client == nil {
		return "", fmt.Errorf("IMAP session is closed")
	}

	status, err := s.client.Status(folder, []imap.StatusItem{imap.StatusUidNext})
	if err != nil {
		return "", fmt.Errorf("failed to get status of folder %s: %w", folder, err)
	}

	literal := bytes.NewBuffer(raw)
	if err := s.client.Append(folder, []string{imap.SeenFlag}, time.Now(), literal); err != nil {
		return "", fmt.Errorf("failed to append message to %s: %w", folder, err)
	}

	return strconv.FormatUint(uint64(status.UidNext), 10), nil
}
