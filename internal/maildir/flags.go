package maildir

import (
	"context"
	"fmt"
	"sort"

	"github.com/emersion/go-maildir"

	"github.com/brandon/mailctl/internal/cache"
	"github.com/brandon/mailctl/pkg/types"
)

var toMaildir = map[types.Flag]maildir.Flag{
	types.FlagSeen:     maildir.FlagSeen,
	types.FlagAnswered: maildir.FlagReplied,
	types.FlagFlagged:  maildir.FlagFlagged,
	types.FlagDeleted:  maildir.FlagTrashed,
	types.FlagDraft:    maildir.FlagDraft,
}

// toMaildirFlags converts flags to Maildir info flags. Maildir has no
// keywords: custom flags are dropped.
func toMaildirFlags(flags []types.Flag) []maildir.Flag {
	out := make([]maildir.Flag, 0, len(flags))
	for _, f := range flags {
		if mf, ok := toMaildir[f]; ok {
			out = append(out, mf)
		}
	}
	return out
}

func fromMaildirFlags(flags []maildir.Flag) []types.Flag {
	out := make([]types.Flag, 0, len(flags))
	for _, mf := range flags {
		for f, candidate := range toMaildir {
			if candidate == mf {
				out = append(out, f)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddFlags adds flags to messages
func (s *Store) AddFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	err := s.updateFlags(ctx, folder, ids, func(current []maildir.Flag) []maildir.Flag {
		return union(current, toMaildirFlags(flags))
	})
	if err != nil {
		return err
	}
	return s.recordFlags(ctx, folder, ids, cache.ActionAddFlags, flags)
}

// RemoveFlags removes flags from messages
func (s *Store) RemoveFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	err := s.updateFlags(ctx, folder, ids, func(current []maildir.Flag) []maildir.Flag {
		return difference(current, toMaildirFlags(flags))
	})
	if err != nil {
		return err
	}
	return s.recordFlags(ctx, folder, ids, cache.ActionRemoveFlags, flags)
}

// SetFlags replaces the flags of messages
func (s *Store) SetFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	err := s.updateFlags(ctx, folder, ids, func([]maildir.Flag) []maildir.Flag {
		return toMaildirFlags(flags)
	})
	if err != nil {
		return err
	}
	return s.recordFlags(ctx, folder, ids, cache.ActionSetFlags, flags)
}

func (s *Store) updateFlags(ctx context.Context, folder string, ids []string, update func([]maildir.Flag) []maildir.Flag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no message id given")
	}

	d, err := s.open(folder)
	if err != nil {
		return err
	}

	for _, id := range ids {
		msg, err := d.MessageByKey(id)
		if err != nil {
			return fmt.Errorf("message %s not found in folder %s: %w", id, folder, err)
		}
		if err := msg.SetFlags(update(msg.Flags())); err != nil {
			return fmt.Errorf("failed to set flags of message %s: %w", id, err)
		}
	}
	return nil
}

func (s *Store) recordFlags(ctx context.Context, folder string, ids []string, action cache.Action, flags []types.Flag) error {
	for _, id := range ids {
		change := cache.Change{Folder: folder, Action: action, MessageID: id, Flags: flags}
		if err := s.record(ctx, change); err != nil {
			return err
		}
	}
	return nil
}

func union(a, b []maildir.Flag) []maildir.Flag {
	out := append([]maildir.Flag(nil), a...)
	for _, f := range b {
		if !contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func difference(a, b []maildir.Flag) []maildir.Flag {
	var out []maildir.Flag
	for _, f := range a {
		if !contains(b, f) {
			out = append(out, f)
		}
	}
	return out
}

func contains(flags []maildir.Flag, f maildir.Flag) bool {
	for _, candidate := range flags {
		if candidate == f {
			return true
		}
	}
	return false
}
