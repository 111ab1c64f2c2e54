package imap

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/emersion/go-imap"

	"github.com/brandon/mailctl/pkg/types"
)

var systemFlags = map[types.Flag]string{
	types.FlagSeen:     imap.SeenFlag,
	types.FlagAnswered: imap.AnsweredFlag,
	types.FlagFlagged:  imap.FlaggedFlag,
	types.FlagDeleted:  imap.DeletedFlag,
	types.FlagDraft:    imap.DraftFlag,
}

// toIMAPFlags converts flags to IMAP system flags or keywords
func toIMAPFlags(flags []types.Flag) []interface{} {
	out := make([]interface{}, 0, len(flags))
	for _, f := range flags {
		if sys, ok := systemFlags[f]; ok {
			out = append(out, sys)
			continue
		}
		out = append(out, string(f))
	}
	return out
}

// fromIMAPFlags converts IMAP flags, dropping \Recent
func fromIMAPFlags(flags []string) []types.Flag {
	out := make([]types.Flag, 0, len(flags))
	for _, f := range flags {
		if f == imap.RecentFlag {
			continue
		}
		out = append(out, types.ParseFlag(f))
	}
	return out
}

// parseUIDs parses message ids as IMAP UIDs
func parseUIDs(ids []string) ([]uint32, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no message id given")
	}
	uids := make([]uint32, 0, len(ids))
	for _, id := range ids {
		uid, err := strconv.ParseUint(strings.TrimSpace(id), 10, 32)
		if err != nil || uid == 0 {
			return nil, fmt.Errorf("invalid IMAP message id %q", id)
		}
		uids = append(uids, uint32(uid))
	}
	return uids, nil
}

// AddFlags adds flags to messages
func (s *Session) AddFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	return s.store(ctx, folder, ids, imap.AddFlags, flags)
}

// RemoveFlags removes flags from messages
func (s *Session) RemoveFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	return s.store(ctx, folder, ids, imap.RemoveFlags, flags)
}

// SetFlags replaces the flags of messages
func (s *Session) SetFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	return s.store(ctx, folder, ids, imap.SetFlags, flags)
}

func (s *Session) store(ctx context.Context, folder string, ids []string, op imap.FlagsOp, flags []types.Flag) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	uids, err := parseUIDs(ids)
	if err != nil {
		return err
	}

	if _, err := s.selectFolder(folder); err != nil {
		return err
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	item := imap.FormatFlagsOp(op, true)
	if err := s.client.UidStore(seqSet, item, toIMAPFlags(flags), nil); err != nil {
		return fmt.Errorf("failed to store flags: %w", err)
	}
	return nil
}
