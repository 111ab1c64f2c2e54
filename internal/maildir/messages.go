package maildir

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/emersion/go-maildir"

	"github.com/brandon/mailctl/internal/cache"
	"github.com/brandon/mailctl/pkg/types"
)

// open returns the Maildir of an existing folder, with new messages moved
// to cur so every message is reachable by key
func (s *Store) open(folder string) (maildir.Dir, error) {
	d, err := s.existingDir(folder)
	if err != nil {
		return "", err
	}
	if _, err := d.Unseen(); err != nil {
		return "", fmt.Errorf("failed to scan new messages of %s: %w", folder, err)
	}
	return d, nil
}

// ListEnvelopes lists one page of envelopes, newest first
func (s *Store) ListEnvelopes(ctx context.Context, folder string, page, pageSize int) ([]types.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := s.open(folder)
	if err != nil {
		return nil, err
	}

	var envelopes []types.Envelope
	err = d.Walk(func(msg *maildir.Message) error {
		raw, err := readMessage(msg)
		if err != nil {
			return err
		}
		env, err := types.ParseEnvelope(msg.Key(), raw)
		if err != nil {
			s.logger.WithError(err).WithField("key", msg.Key()).Warn("Skipping unparsable message")
			return nil
		}
		env.Flags = fromMaildirFlags(msg.Flags())
		envelopes = append(envelopes, *env)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes of %s: %w", folder, err)
	}

	sort.SliceStable(envelopes, func(i, j int) bool {
		if envelopes[i].Date.Equal(envelopes[j].Date) {
			return envelopes[i].ID > envelopes[j].ID
		}
		return envelopes[i].Date.After(envelopes[j].Date)
	})

	return paginate(envelopes, page, pageSize), nil
}

func paginate(envelopes []types.Envelope, page, pageSize int) []types.Envelope {
	if pageSize <= 0 {
		if envelopes == nil {
			return []types.Envelope{}
		}
		return envelopes
	}
	start := page * pageSize
	if page < 0 || start >= len(envelopes) {
		return []types.Envelope{}
	}
	end := start + pageSize
	if end > len(envelopes) {
		end = len(envelopes)
	}
	return envelopes[start:end]
}

// PeekMessages reads messages by key, in the order of ids, without
// changing their flags
func (s *Store) PeekMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no message id given")
	}

	d, err := s.open(folder)
	if err != nil {
		return nil, err
	}

	messages := make([]types.Message, 0, len(ids))
	for _, id := range ids {
		msg, err := d.MessageByKey(id)
		if err != nil {
			return nil, fmt.Errorf("message %s not found in folder %s: %w", id, folder, err)
		}
		raw, err := readMessage(msg)
		if err != nil {
			return nil, err
		}
		messages = append(messages, types.Message{ID: id, Folder: folder, Raw: raw})
	}
	return messages, nil
}

// AddMessage delivers a raw message to folder as seen and returns its key
func (s *Store) AddMessage(ctx context.Context, folder string, raw []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d, err := s.existingDir(folder)
	if err != nil {
		return "", err
	}

	msg, w, err := d.Create([]maildir.Flag{maildir.FlagSeen})
	if err != nil {
		return "", fmt.Errorf("failed to create message in %s: %w", folder, err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close() //nolint:errcheck
		return "", fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to write message: %w", err)
	}

	id := msg.Key()
	if err := s.record(ctx, cache.Change{Folder: folder, Action: cache.ActionAddMessage, MessageID: id}); err != nil {
		return "", err
	}
	return id, nil
}

func readMessage(msg *maildir.Message) ([]byte, error) {
	rc, err := msg.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open message %s: %w", msg.Key(), err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read message %s: %w", msg.Key(), err)
	}
	return raw, nil
}
