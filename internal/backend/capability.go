package backend

import (
	"context"

	"github.com/brandon/mailctl/pkg/types"
)

// Capability interfaces, one per Operation. Protocol implementations
// satisfy any subset of them.

// FolderLister serves ListFolders
type FolderLister interface {
	ListFolders(ctx context.Context) ([]types.Folder, error)
}

// FolderAdder serves AddFolder
type FolderAdder interface {
	AddFolder(ctx context.Context, folder string) error
}

// FolderDeleter serves DeleteFolder
type FolderDeleter interface {
	DeleteFolder(ctx context.Context, folder string) error
}

// EnvelopeLister serves ListEnvelopes. page starts at 0; a pageSize of 0
// lists every envelope.
type EnvelopeLister interface {
	ListEnvelopes(ctx context.Context, folder string, page, pageSize int) ([]types.Envelope, error)
}

// MessageGetter serves GetMessages. Fetched messages are marked as seen.
type MessageGetter interface {
	GetMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error)
}

// MessagePeeker serves PeekMessages. Flags are left untouched.
type MessagePeeker interface {
	PeekMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error)
}

// MessageAdder serves AddMessage and returns the id of the stored message
type MessageAdder interface {
	AddMessage(ctx context.Context, folder string, raw []byte) (string, error)
}

// MessageSender serves SendMessage
type MessageSender interface {
	SendMessage(ctx context.Context, raw []byte) error
}

// FlagAdder serves AddFlags
type FlagAdder interface {
	AddFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error
}

// FlagRemover serves RemoveFlags
type FlagRemover interface {
	RemoveFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error
}

// FlagSetter serves SetFlags
type FlagSetter interface {
	SetFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error
}

// Implements reports whether c implements the capability interface of op
func Implements(op Operation, c any) bool {
	var ok bool
	switch op {
	case ListFolders:
		_, ok = c.(FolderLister)
	case AddFolder:
		_, ok = c.(FolderAdder)
	case DeleteFolder:
		_, ok = c.(FolderDeleter)
	case ListEnvelopes:
		_, ok = c.(EnvelopeLister)
	case GetMessages:
		_, ok = c.(MessageGetter)
	case PeekMessages:
		_, ok = c.(MessagePeeker)
	case AddMessage:
		_, ok = c.(MessageAdder)
	case SendMessage:
		_, ok = c.(MessageSender)
	case AddFlags:
		_, ok = c.(FlagAdder)
	case RemoveFlags:
		_, ok = c.(FlagRemover)
	case SetFlags:
		_, ok = c.(FlagSetter)
	}
	return ok
}
