package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon/mailctl/pkg/types"
)

// staticAccount maps operations to kinds
type staticAccount map[Operation]Kind

func (a staticAccount) AccountName() string { return "test" }

func (a staticAccount) BackendKind(op Operation) (Kind, bool) {
	k, ok := a[op]
	return k, ok
}

// recorder counts handle constructions and records capability calls
type recorder struct {
	built map[Kind]int
	calls []string
}

func newRecorder() *recorder {
	return &recorder{built: make(map[Kind]int)}
}

func (r *recorder) call(kind Kind, what string) {
	r.calls = append(r.calls, fmt.Sprintf("%s:%s", kind, what))
}

// stubHandle implements every capability except GetMessages
type stubHandle struct {
	kind   Kind
	rec    *recorder
	addErr error
}

func (h *stubHandle) Close() error {
	h.rec.call(h.kind, "Close")
	return nil
}

func (h *stubHandle) ListFolders(ctx context.Context) ([]types.Folder, error) {
	h.rec.call(h.kind, "ListFolders")
	return []types.Folder{{Name: "INBOX", Desc: h.kind.String()}}, nil
}

func (h *stubHandle) AddFolder(ctx context.Context, folder string) error {
	h.rec.call(h.kind, "AddFolder")
	return nil
}

func (h *stubHandle) DeleteFolder(ctx context.Context, folder string) error {
	h.rec.call(h.kind, "DeleteFolder")
	return nil
}

func (h *stubHandle) ListEnvelopes(ctx context.Context, folder string, page, pageSize int) ([]types.Envelope, error) {
	h.rec.call(h.kind, "ListEnvelopes")
	return []types.Envelope{{ID: "1"}}, nil
}

func (h *stubHandle) PeekMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error) {
	h.rec.call(h.kind, "PeekMessages")
	return messages(folder, ids), nil
}

func (h *stubHandle) AddMessage(ctx context.Context, folder string, raw []byte) (string, error) {
	h.rec.call(h.kind, "AddMessage")
	if h.addErr != nil {
		return "", h.addErr
	}
	return "42", nil
}

func (h *stubHandle) SendMessage(ctx context.Context, raw []byte) error {
	h.rec.call(h.kind, "SendMessage")
	return nil
}

func (h *stubHandle) AddFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	h.rec.call(h.kind, fmt.Sprintf("AddFlags%v", flags))
	return nil
}

func (h *stubHandle) RemoveFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	h.rec.call(h.kind, "RemoveFlags")
	return nil
}

func (h *stubHandle) SetFlags(ctx context.Context, folder string, ids []string, flags []types.Flag) error {
	h.rec.call(h.kind, "SetFlags")
	return nil
}

// getterHandle adds a native GetMessages
type getterHandle struct {
	*stubHandle
}

func (h *getterHandle) GetMessages(ctx context.Context, folder string, ids []string) ([]types.Message, error) {
	h.rec.call(h.kind, "GetMessages")
	return messages(folder, ids), nil
}

func messages(folder string, ids []string) []types.Message {
	out := make([]types.Message, len(ids))
	for i, id := range ids {
		out[i] = types.Message{ID: id, Folder: folder, Raw: []byte("Subject: " + id + "\r\n\r\n")}
	}
	return out
}

type stubOptions struct {
	buildErr map[Kind]error
	addErr   map[Kind]error
}

// newStubRegistry registers kinds the way compiled-in implementations do.
// IMAP handles get a native GetMessages, the others do not.
func newStubRegistry(rec *recorder, opts stubOptions, kinds ...Kind) *Registry {
	reg := NewRegistry()
	for _, kind := range kinds {
		kind := kind
		reg.RegisterHandle(kind, func(ctx context.Context) (Handle, error) {
			if err := opts.buildErr[kind]; err != nil {
				return nil, err
			}
			rec.built[kind]++
			h := &stubHandle{kind: kind, rec: rec, addErr: opts.addErr[kind]}
			if kind == KindIMAP {
				return &getterHandle{h}, nil
			}
			return h, nil
		})
		for _, op := range Operations() {
			if !Supports(op, kind) {
				continue
			}
			op := op
			reg.Register(op, kind, func(h Handle) (any, bool) {
				return h, Implements(op, h)
			})
		}
	}
	return reg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func build(t *testing.T, account staticAccount, reg *Registry, register func(r *Registration)) *Backend {
	t.Helper()
	b, err := NewBuilder(account, reg, testLogger()).Build(context.Background(), register)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func enableAll(r *Registration) {
	r.Enable(Operations()...)
}

// invoke calls op on b with placeholder arguments
func invoke(b *Backend, op Operation) error {
	ctx := context.Background()
	ids := []string{"1"}
	flags := []types.Flag{types.FlagFlagged}
	var err error
	switch op {
	case ListFolders:
		_, err = b.ListFolders(ctx)
	case AddFolder:
		err = b.AddFolder(ctx, "Archive")
	case DeleteFolder:
		err = b.DeleteFolder(ctx, "Archive")
	case ListEnvelopes:
		_, err = b.ListEnvelopes(ctx, "INBOX", 0, 10)
	case GetMessages:
		_, err = b.GetMessages(ctx, "INBOX", ids)
	case PeekMessages:
		_, err = b.PeekMessages(ctx, "INBOX", ids)
	case AddMessage:
		_, err = b.AddMessage(ctx, "INBOX", []byte("raw"))
	case SendMessage:
		err = b.SendMessage(ctx, []byte("raw"))
	case AddFlags:
		err = b.AddFlags(ctx, "INBOX", ids, flags)
	case RemoveFlags:
		err = b.RemoveFlags(ctx, "INBOX", ids, flags)
	case SetFlags:
		err = b.SetFlags(ctx, "INBOX", ids, flags)
	}
	return err
}

func TestUnconfiguredOperationsAreUnavailable(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{}, reg, enableAll)

	for _, op := range Operations() {
		t.Run(op.String(), func(t *testing.T) {
			err := invoke(b, op)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCapabilityUnavailable))

			var unavailable *UnavailableError
			require.True(t, errors.As(err, &unavailable))
			assert.Equal(t, op, unavailable.Op)
			assert.False(t, unavailable.Configured)
		})
	}
	assert.Empty(t, rec.built)
}

func TestOnlyGetMessagesConfigured(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{GetMessages: KindIMAP}, reg, enableAll)

	msgs, err := b.GetMessages(context.Background(), "INBOX", []string{"3", "1"})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "3", msgs[0].ID)
	assert.Equal(t, "1", msgs[1].ID)
	assert.Equal(t, []string{"imap:GetMessages"}, rec.calls)

	_, err = b.AddMessage(context.Background(), "INBOX", []byte("raw"))
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, AddMessage, unavailable.Op)
	assert.False(t, unavailable.Configured)
}

func TestSharedKindIsBuiltOnce(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	account := staticAccount{
		ListFolders:  KindIMAP,
		AddFolder:    KindIMAP,
		PeekMessages: KindIMAP,
		AddFlags:     KindIMAP,
	}
	b := build(t, account, reg, enableAll)

	for _, op := range []Operation{ListFolders, AddFolder, PeekMessages, AddFlags} {
		assert.True(t, b.Has(op), op.String())
		require.NoError(t, invoke(b, op))
	}
	assert.Equal(t, map[Kind]int{KindIMAP: 1}, rec.built)
}

func TestUnneededKindIsNeverBuilt(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	account := staticAccount{
		ListFolders: KindIMAP,
		AddMessage:  KindMaildir,
		SendMessage: KindSMTP,
	}
	b := build(t, account, reg, func(r *Registration) {
		r.Enable(ListFolders)
	})

	_, err := b.ListFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.built[KindIMAP])
	assert.Zero(t, rec.built[KindMaildir])
	assert.Zero(t, rec.built[KindSMTP])
	assert.False(t, b.Has(SendMessage))
}

func TestNotCompiledInIsUnavailable(t *testing.T) {
	rec := newRecorder()
	// no Maildir implementation
	reg := newStubRegistry(rec, stubOptions{}, KindIMAP, KindSMTP)
	b := build(t, staticAccount{DeleteFolder: KindMaildir}, reg, func(r *Registration) {
		r.Enable(DeleteFolder, ListFolders)
	})

	missing := b.DeleteFolder(context.Background(), "Archive")
	_, unconfigured := b.ListFolders(context.Background())

	assert.ErrorIs(t, missing, ErrCapabilityUnavailable)
	assert.ErrorIs(t, unconfigured, ErrCapabilityUnavailable)
	assert.IsType(t, unconfigured, missing)

	var unavailable *UnavailableError
	require.ErrorAs(t, missing, &unavailable)
	assert.Equal(t, DeleteFolder, unavailable.Op)
	assert.Equal(t, KindMaildir, unavailable.Kind)
	assert.Empty(t, rec.built)
}

func TestUnsupportedConfiguredKindIsUnavailable(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{SendMessage: KindIMAP, AddFolder: KindSMTP}, reg, enableAll)

	err := b.SendMessage(context.Background(), []byte("raw"))
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.True(t, unavailable.Configured)
	assert.Equal(t, KindIMAP, unavailable.Kind)
	assert.Contains(t, err.Error(), "imap")

	assert.ErrorIs(t, b.AddFolder(context.Background(), "x"), ErrCapabilityUnavailable)
	assert.Empty(t, rec.built)
}

func TestSendThenSaveCopy(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	account := staticAccount{SendMessage: KindSMTP, AddMessage: KindMaildir}
	b := build(t, account, reg, func(r *Registration) {
		r.Enable(SendMessage, AddMessage)
	})

	require.NoError(t, b.SendAndSaveCopy(context.Background(), []byte("raw"), "Sent", true))
	assert.Equal(t, []string{"smtp:SendMessage", "maildir:AddMessage"}, rec.calls)
}

func TestSendWithoutCopyNeverBuildsStorage(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	account := staticAccount{SendMessage: KindSMTP, AddMessage: KindMaildir}
	b := build(t, account, reg, func(r *Registration) {
		r.Enable(SendMessage)
	})

	require.NoError(t, b.SendAndSaveCopy(context.Background(), []byte("raw"), "Sent", false))
	assert.Equal(t, []string{"smtp:SendMessage"}, rec.calls)
	assert.Zero(t, rec.built[KindMaildir])
}

func TestSaveCopyFailureKeepsSend(t *testing.T) {
	rec := newRecorder()
	missing := errors.New("folder Sent not found")
	reg := newStubRegistry(rec, stubOptions{addErr: map[Kind]error{KindMaildir: missing}}, Kinds()...)
	account := staticAccount{SendMessage: KindSMTP, AddMessage: KindMaildir}
	b := build(t, account, reg, func(r *Registration) {
		r.Enable(SendMessage, AddMessage)
	})

	err := b.SendAndSaveCopy(context.Background(), []byte("raw"), "Sent", true)
	require.Error(t, err)

	var copyErr *SaveCopyError
	require.ErrorAs(t, err, &copyErr)
	assert.Equal(t, "Sent", copyErr.Folder)
	assert.ErrorIs(t, err, missing)
	assert.NotErrorIs(t, err, ErrCapabilityUnavailable)
	assert.Equal(t, []string{"smtp:SendMessage", "maildir:AddMessage"}, rec.calls)
}

func TestSaveCopyWithoutStorageIsSaveCopyError(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, KindSMTP)
	account := staticAccount{SendMessage: KindSMTP, AddMessage: KindMaildir}
	b := build(t, account, reg, func(r *Registration) {
		r.Enable(SendMessage, AddMessage)
	})

	err := b.SendAndSaveCopy(context.Background(), []byte("raw"), "Sent", true)
	var copyErr *SaveCopyError
	require.ErrorAs(t, err, &copyErr)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	assert.Equal(t, []string{"smtp:SendMessage"}, rec.calls)
}

func TestFailedSendSkipsCopy(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{AddMessage: KindMaildir}, reg, func(r *Registration) {
		r.Enable(SendMessage, AddMessage)
	})

	err := b.SendAndSaveCopy(context.Background(), []byte("raw"), "Sent", true)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	var copyErr *SaveCopyError
	assert.False(t, errors.As(err, &copyErr))
	assert.Empty(t, rec.calls)
}

func TestHandleFailureAbortsAssembly(t *testing.T) {
	rec := newRecorder()
	refused := errors.New("connection refused")
	reg := newStubRegistry(rec, stubOptions{buildErr: map[Kind]error{KindIMAP: refused}}, Kinds()...)
	account := staticAccount{ListFolders: KindMaildir, AddFolder: KindIMAP}

	b, err := NewBuilder(account, reg, testLogger()).Build(context.Background(), func(r *Registration) {
		r.Enable(ListFolders, AddFolder)
	})
	require.Error(t, err)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, refused)

	var handleErr *HandleError
	require.ErrorAs(t, err, &handleErr)
	assert.Equal(t, KindIMAP, handleErr.Kind)

	// the Maildir handle built before the failure is released
	assert.Equal(t, 1, rec.built[KindMaildir])
	assert.Equal(t, []string{"maildir:Close"}, rec.calls)
}

func TestGetMessagesFallsBackToPeek(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{GetMessages: KindMaildir}, reg, func(r *Registration) {
		r.EnableGetMessages()
	})

	assert.False(t, b.Has(GetMessages))
	msgs, err := b.GetMessages(context.Background(), "INBOX", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"maildir:PeekMessages", "maildir:AddFlags[seen]"}, rec.calls)
	assert.Equal(t, 1, rec.built[KindMaildir])
}

func TestGetMessagesWithoutConfiguredKindNeverFallsBack(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{PeekMessages: KindMaildir, AddFlags: KindMaildir}, reg, enableAll)

	require.True(t, b.Has(PeekMessages))
	require.True(t, b.Has(AddFlags))

	_, err := b.GetMessages(context.Background(), "INBOX", []string{"1"})
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, GetMessages, unavailable.Op)
	assert.False(t, unavailable.Configured)
	assert.Empty(t, rec.calls)
}

func TestGetMessagesFallbackNeedsTheSameKind(t *testing.T) {
	tests := []struct {
		name    string
		account staticAccount
	}{
		{"peek elsewhere", staticAccount{GetMessages: KindMaildir, PeekMessages: KindMaildirForSync, AddFlags: KindMaildir}},
		{"flags elsewhere", staticAccount{GetMessages: KindMaildir, PeekMessages: KindMaildir, AddFlags: KindMaildirForSync}},
		{"flags missing", staticAccount{GetMessages: KindMaildir, PeekMessages: KindMaildir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
			b := build(t, tt.account, reg, enableAll)

			_, err := b.GetMessages(context.Background(), "INBOX", []string{"1"})
			var unavailable *UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.True(t, unavailable.Configured)
			assert.Equal(t, KindMaildir, unavailable.Kind)
			assert.Empty(t, rec.calls)
		})
	}
}

func TestGetMessagesPrefersNativeGetter(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{GetMessages: KindIMAP}, reg, func(r *Registration) {
		r.EnableGetMessages()
	})

	_, err := b.GetMessages(context.Background(), "INBOX", []string{"1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"imap:GetMessages"}, rec.calls)
}

func TestLaterRequestWins(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{PeekMessages: KindIMAP}, reg, func(r *Registration) {
		r.Enable(PeekMessages)
		r.EnableKind(PeekMessages, KindMaildir)
	})

	_, err := b.PeekMessages(context.Background(), "INBOX", []string{"1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"maildir:PeekMessages"}, rec.calls)
	assert.Zero(t, rec.built[KindIMAP])
}

func TestLaterUnservableRequestDropsEarlierOne(t *testing.T) {
	tests := []struct {
		name       string
		later      func(r *Registration)
		kind       Kind
		configured bool
	}{
		{"not compiled in", func(r *Registration) { r.EnableKind(AddFlags, KindMaildir) }, KindMaildir, true},
		{"unsupported kind", func(r *Registration) { r.EnableKind(AddFlags, KindSMTP) }, KindSMTP, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			// IMAP is the only compiled-in kind
			reg := newStubRegistry(rec, stubOptions{}, KindIMAP)
			b := build(t, staticAccount{AddFlags: KindIMAP}, reg, func(r *Registration) {
				r.Enable(AddFlags)
				tt.later(r)
			})

			err := b.AddFlags(context.Background(), "INBOX", []string{"1"}, nil)
			var unavailable *UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, tt.kind, unavailable.Kind)
			assert.Equal(t, tt.configured, unavailable.Configured)
			assert.Empty(t, rec.calls)
			assert.Empty(t, rec.built)
		})
	}
}

func TestLaterRequestKeepsOtherOperations(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, KindIMAP)
	b := build(t, staticAccount{AddFlags: KindIMAP, ListFolders: KindIMAP}, reg, func(r *Registration) {
		r.Enable(ListFolders, AddFlags)
		r.EnableKind(AddFlags, KindMaildir)
	})

	assert.True(t, b.Has(ListFolders))
	assert.False(t, b.Has(AddFlags))
	assert.Equal(t, 1, rec.built[KindIMAP])
}

func TestEnableWithOverridesFactory(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{ListFolders: KindIMAP}, reg, func(r *Registration) {
		r.EnableWith(ListFolders, Bind(func(h *getterHandle) (FolderLister, bool) {
			return fixedFolders{{Name: "Custom"}}, true
		}))
	})

	folders, err := b.ListFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.Folder{{Name: "Custom"}}, folders)
	assert.Equal(t, 1, rec.built[KindIMAP])
}

type fixedFolders []types.Folder

func (f fixedFolders) ListFolders(ctx context.Context) ([]types.Folder, error) {
	return f, nil
}

func TestFactoryDecliningLeavesSlotEmpty(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{ListFolders: KindMaildir}, reg, func(r *Registration) {
		// a Maildir handle is not a getterHandle
		r.EnableWith(ListFolders, Bind(func(h *getterHandle) (FolderLister, bool) {
			return h, true
		}))
	})

	assert.False(t, b.Has(ListFolders))
	_, err := b.ListFolders(context.Background())
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
}

func TestFactoryReturningWrongTypeFails(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	reg.Register(ListFolders, KindIMAP, func(h Handle) (any, bool) {
		return "not a lister", true
	})

	_, err := NewBuilder(staticAccount{ListFolders: KindIMAP}, reg, testLogger()).Build(context.Background(), func(r *Registration) {
		r.Enable(ListFolders)
	})
	require.Error(t, err)
	assert.Contains(t, rec.calls, "imap:Close")
}

func TestCloseReleasesHandlesInReverseOrder(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	account := staticAccount{ListFolders: KindMaildir, SendMessage: KindSMTP, AddFolder: KindIMAP}
	b, err := NewBuilder(account, reg, testLogger()).Build(context.Background(), func(r *Registration) {
		r.Enable(ListFolders, SendMessage, AddFolder)
	})
	require.NoError(t, err)

	require.NoError(t, b.Close())
	assert.Equal(t, []string{"imap:Close", "smtp:Close", "maildir:Close"}, rec.calls)
}

func TestNilRegistrationBuildsEmptyBackend(t *testing.T) {
	rec := newRecorder()
	reg := newStubRegistry(rec, stubOptions{}, Kinds()...)
	b := build(t, staticAccount{ListFolders: KindIMAP}, reg, nil)

	assert.Equal(t, "test", b.Account())
	for _, op := range Operations() {
		assert.ErrorIs(t, invoke(b, op), ErrCapabilityUnavailable, op.String())
	}
	assert.Empty(t, rec.built)
}

func TestRegisterPanicsOnUnsupportedKind(t *testing.T) {
	reg := NewRegistry()
	noop := func(h Handle) (any, bool) { return h, true }

	assert.Panics(t, func() { reg.Register(SendMessage, KindIMAP, noop) })
	assert.Panics(t, func() { reg.Register(ListFolders, KindSendmail, noop) })
	assert.NotPanics(t, func() { reg.Register(SendMessage, KindSendmail, noop) })
}

func TestLookupRequiresHandle(t *testing.T) {
	reg := NewRegistry()
	reg.Register(ListFolders, KindMaildir, func(h Handle) (any, bool) { return h, true })

	_, ok := reg.Lookup(ListFolders, KindMaildir)
	assert.False(t, ok)

	reg.RegisterHandle(KindMaildir, func(ctx context.Context) (Handle, error) { return nil, nil })
	_, ok = reg.Lookup(ListFolders, KindMaildir)
	assert.True(t, ok)
	assert.Equal(t, []Kind{KindMaildir}, reg.Kinds())
}
