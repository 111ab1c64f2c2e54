package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/brandon/mailctl/internal/backend"
)

// FolderList lists the folders of an account
type FolderList struct {
	Account string
}

// Execute runs the command
func (c *FolderList) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing list folders command")

	_, b, err := env.open(ctx, c.Account, func(r *backend.Registration) {
		r.Enable(backend.ListFolders)
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	folders, err := b.ListFolders(ctx)
	if err != nil {
		return err
	}
	return env.Printer.Folders(folders)
}

// FolderAdd creates a folder
type FolderAdd struct {
	Account string
	Folder  string
}

// Execute runs the command
func (c *FolderAdd) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing add folder command")

	_, b, err := env.open(ctx, c.Account, func(r *backend.Registration) {
		r.Enable(backend.AddFolder)
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	if err := b.AddFolder(ctx, c.Folder); err != nil {
		return err
	}
	return env.Printer.Print(fmt.Sprintf("Folder %s successfully created!", c.Folder))
}

// FolderDelete deletes a folder and every message in it, after
// confirmation
type FolderDelete struct {
	Account string
	Folder  string
}

// ErrAborted is returned when the user declines a confirmation
var ErrAborted = errors.New("aborted")

// Execute runs the command
func (c *FolderDelete) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing delete folder command")

	question := fmt.Sprintf("Do you really want to delete the folder %s? All emails will be definitely deleted.", c.Folder)
	ok, err := env.Confirmer.Confirm(question)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	_, b, err := env.open(ctx, c.Account, func(r *backend.Registration) {
		r.Enable(backend.DeleteFolder)
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	if err := b.DeleteFolder(ctx, c.Folder); err != nil {
		return err
	}
	return env.Printer.Print(fmt.Sprintf("Folder %s successfully deleted!", c.Folder))
}
