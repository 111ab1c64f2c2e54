package backend

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/pkg/types"
)

// Backend exposes the operations assembled for one command invocation.
// Every method either delegates to the bound capability or fails with an
// UnavailableError. Results and errors of capabilities are returned as is.
type Backend struct {
	account string
	kinds   map[Operation]Kind
	served  map[Operation]Kind
	slots   map[Operation]any
	pool    *Pool
	logger  *logrus.Logger
}

// Account returns the name of the account the backend was built for
func (b *Backend) Account() string {
	return b.account
}

// Has reports whether op has a bound capability
func (b *Backend) Has(op Operation) bool {
	_, ok := b.slots[op]
	return ok
}

// Close releases every handle built for this backend
func (b *Backend) Close() error {
	return b.pool.Close()
}

func (b *Backend) unavailable(op Operation) error {
	kind, configured := b.kinds[op]
	return &UnavailableError{Op: op, Kind: kind, Configured: configured}
}

func slot[C any](b *Backend, op Operation) (C, bool) {
	c, ok := b.slots[op].(C)
	return c, ok
}

// ListFolders lists the folders of the account
func (b *Backend) ListFolders(ctx context.Context) ([]types.Folder, error) {
	c, ok := slot[FolderLister](b, ListFolders)
	if !ok {
		return nil, b.unavailable(ListFolders)
	}
	return c.ListFolders(ctx)
}

// AddFolder creates a folder
func (b *Backend) AddFolder(ctx context.Context, folder string) error {
	c, ok := slot[FolderAdder](b, AddFolder)
	if !ok {
		return b.unavailable(AddFolder)
	}
	return c.AddFolder(ctx, folder)
}

// DeleteFolder deletes a folder and every message in it
func (b *Backend) DeleteFolder(ctx context.Context, folder string) error {
	c, ok := slot[FolderDeleter](b, DeleteFolder)
	if !ok {
		return b.unavailable(DeleteFolder)
	}
	return c.DeleteFolder(ctx, folder)
}

// ListEnvelopes lists one page of envelopes of folder
func (b *Backend) ListEnvelopes(ctx context.Context, folder string, page, pageSize int) ([]types.Envelope, error) {
	c, ok := slot[EnvelopeLister](b, ListEnvelopes)
	if !ok {
		return nil, b.unavailable(ListEnvelopes)
	}
	return c.ListEnvelopes(ctx, folder, page, pageSize)
}

// servedBy reports whether the slot of op is bound to a capability of kind
func (b *Backend) servedBy(op Operation, kind Kind) bool {
	k, ok := b.served[op]
	return ok && k == kind
}

// GetMessages fetches messages and marks them as seen. Without a bound
// getter it falls back to peeking the messages then adding the seen flag,
// but only when GetMessages has a configured kind and both PeekMessages
// and AddFlags are bound to that same kind.
func (b *Backend) GetMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error) {
	if c, ok := slot[MessageGetter](b, GetMessages); ok {
		return c.GetMessages(ctx, folder, ids)
	}

	kind, configured := b.kinds[GetMessages]
	if !configured || !b.servedBy(PeekMessages, kind) || !b.servedBy(AddFlags, kind) {
		return nil, b.unavailable(GetMessages)
	}
	peeker, okPeek := slot[MessagePeeker](b, PeekMessages)
	flagger, okFlag := slot[FlagAdder](b, AddFlags)
	if !okPeek || !okFlag {
		return nil, b.unavailable(GetMessages)
	}

	msgs, err := peeker.PeekMessages(ctx, folder, ids)
	if err != nil {
		return nil, err
	}
	if err := flagger.AddFlags(ctx, folder, ids, []types.Flag{types.FlagSeen}); err != nil {
		return nil, err
	}
	return msgs, nil
}

// PeekMessages fetches messages without changing their flags
func (b *Backend) PeekMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error) {
	c, ok := slot[MessagePeeker](b, PeekMessages)
	if !ok {
		return nil, b.unavailable(PeekMessages)
	}
	return c.PeekMessages(ctx, folder, ids)
}

// AddMessage stores a raw message in folder and returns its id
func (b *Backend) AddMessage(ctx context.Context, folder string, raw []byte) (string, error) {
	c, ok := slot[MessageAdder](b, AddMessage)
	if !ok {
		return "", b.unavailable(AddMessage)
	}
	return c.AddMessage(ctx, folder, raw)
}

// SendMessage sends a raw message
func (b *Backend) SendMessage(ctx context.Context, raw []byte) error {
	c, ok := slot[MessageSender](b, SendMessage)
	if !ok {
		return b.unavailable(SendMessage)
	}
	return c.SendMessage(ctx, raw)
}

// AddFlags adds flags to messages
func (b *Backend) AddFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	c, ok := slot[FlagAdder](b, AddFlags)
	if !ok {
		return b.unavailable(AddFlags)
	}
	return c.AddFlags(ctx, folder, ids, flags)
}

// RemoveFlags removes flags from messages
func (b *Backend) RemoveFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	c, ok := slot[FlagRemover](b, RemoveFlags)
	if !ok {
		return b.unavailable(RemoveFlags)
	}
	return c.RemoveFlags(ctx, folder, ids, flags)
}

// SetFlags replaces the flags of messages
func (b *Backend) SetFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	c, ok := slot[FlagSetter](b, SetFlags)
	if !ok {
		return b.unavailable(SetFlags)
	}
	return c.SetFlags(ctx, folder, ids, flags)
}

// SendAndSaveCopy sends raw, then stores a copy in folder when saveCopy is
// set. A failed send is returned as is. A failed copy is returned as a
// SaveCopyError and the send is not undone.
func (b *Backend) SendAndSaveCopy(ctx context.Context, raw []byte, folder string, saveCopy bool) error {
	if err := b.SendMessage(ctx, raw); err != nil {
		return err
	}
	if !saveCopy {
		return nil
	}

	id, err := b.AddMessage(ctx, folder, raw)
	if err != nil {
		return &SaveCopyError{Folder: folder, Err: err}
	}

	b.logger.WithFields(logrus.Fields{
		"folder": folder,
		"id":     id,
	}).Debug("Saved copy of sent message")
	return nil
}
