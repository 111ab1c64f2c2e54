package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/brandon/mailctl/internal/cache"
	"github.com/brandon/mailctl/internal/maildir"
)

const noPendingChanges = "No pending changes"

// JournalList prints the local changes of the Maildir-for-sync backend
// not yet pushed to the remote side
type JournalList struct {
	Account string
	Folder  string
	Limit   int
}

// Execute runs the command
func (c *JournalList) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing list journal command")

	acc, err := env.Backends.GetAccount(c.Account)
	if err != nil {
		return err
	}

	journal, err := cache.OpenExisting(maildir.JournalPath(acc.SyncDir), env.Logger)
	if errors.Is(err, fs.ErrNotExist) {
		return env.Printer.Print(noPendingChanges)
	}
	if err != nil {
		return err
	}
	defer journal.Close()

	filter := cache.ChangeFilter{Account: &acc.Name, Limit: c.Limit}
	if c.Folder != "" {
		filter.Folder = &c.Folder
	}
	changes, err := journal.Changes(ctx, filter)
	if err != nil {
		return err
	}
	return env.Printer.Changes(changes)
}

// JournalClear drops the local changes of an account, after confirmation
type JournalClear struct {
	Account string
}

// Execute runs the command
func (c *JournalClear) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing clear journal command")

	acc, err := env.Backends.GetAccount(c.Account)
	if err != nil {
		return err
	}

	ok, err := env.Confirmer.Confirm(fmt.Sprintf("Do you really want to drop the pending changes of %s?", acc.Name))
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	journal, err := cache.OpenExisting(maildir.JournalPath(acc.SyncDir), env.Logger)
	if errors.Is(err, fs.ErrNotExist) {
		return env.Printer.Print(noPendingChanges)
	}
	if err != nil {
		return err
	}
	defer journal.Close()

	n, err := journal.ClearChanges(ctx, acc.Name)
	if err != nil {
		return err
	}
	return env.Printer.Print(fmt.Sprintf("%d change(s) dropped", n))
}
