package backend

import (
	"fmt"
	"strings"
)

// Kind identifies a protocol implementation able to serve operations
type Kind int

// Supported backend kinds
const (
	KindIMAP Kind = iota + 1
	KindMaildir
	KindMaildirForSync
	KindSMTP
	KindSendmail
)

var kindNames = map[Kind]string{
	KindIMAP:           "imap",
	KindMaildir:        "maildir",
	KindMaildirForSync: "maildir-for-sync",
	KindSMTP:           "smtp",
	KindSendmail:       "sendmail",
}

// Kinds returns every known kind in declaration order
func Kinds() []Kind {
	return []Kind{KindIMAP, KindMaildir, KindMaildirForSync, KindSMTP, KindSendmail}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name as found in the configuration
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "sync", "maildir_for_sync":
		name = "maildir-for-sync"
	}
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown backend kind: %q", s)
}

// Operation is one abstract email action exposed by a Backend
type Operation int

// Operations exposed by a Backend
const (
	ListFolders Operation = iota + 1
	AddFolder
	DeleteFolder
	ListEnvelopes
	GetMessages
	PeekMessages
	AddMessage
	SendMessage
	AddFlags
	RemoveFlags
	SetFlags
)

var operationNames = map[Operation]string{
	ListFolders:   "ListFolders",
	AddFolder:     "AddFolder",
	DeleteFolder:  "DeleteFolder",
	ListEnvelopes: "ListEnvelopes",
	GetMessages:   "GetMessages",
	PeekMessages:  "PeekMessages",
	AddMessage:    "AddMessage",
	SendMessage:   "SendMessage",
	AddFlags:      "AddFlags",
	RemoveFlags:   "RemoveFlags",
	SetFlags:      "SetFlags",
}

// Operations returns every known operation in declaration order
func Operations() []Operation {
	return []Operation{
		ListFolders, AddFolder, DeleteFolder, ListEnvelopes,
		GetMessages, PeekMessages, AddMessage, SendMessage,
		AddFlags, RemoveFlags, SetFlags,
	}
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

var (
	storageKinds = []Kind{KindIMAP, KindMaildir, KindMaildirForSync}
	senderKinds  = []Kind{KindSMTP, KindSendmail}
)

// SupportedKinds returns the kinds able to serve op
func SupportedKinds(op Operation) []Kind {
	switch op {
	case SendMessage:
		return senderKinds
	case ListFolders, AddFolder, DeleteFolder, ListEnvelopes,
		GetMessages, PeekMessages, AddMessage,
		AddFlags, RemoveFlags, SetFlags:
		return storageKinds
	}
	return nil
}

// Supports reports whether kind can serve op
func Supports(op Operation, kind Kind) bool {
	for _, k := range SupportedKinds(op) {
		if k == kind {
			return true
		}
	}
	return false
}
