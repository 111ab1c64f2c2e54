package command

import (
	"context"
	"fmt"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/pkg/types"
)

// FlagChange adds, removes or sets flags of messages
type FlagChange struct {
	Account string
	Folder  string
	IDs     []string
	Flags   []types.Flag
	// Op is one of backend.AddFlags, backend.RemoveFlags, backend.SetFlags
	Op backend.Operation
}

// Execute runs the command
func (c *FlagChange) Execute(ctx context.Context, env *Env) error {
	env.Logger.WithField("operation", c.Op.String()).Info("Executing flag command")

	if len(c.IDs) == 0 {
		return fmt.Errorf("no message id given")
	}

	var apply func(*backend.Backend) error
	var done string
	folder := folderOrInbox(c.Folder)
	switch c.Op {
	case backend.AddFlags:
		apply = func(b *backend.Backend) error { return b.AddFlags(ctx, folder, c.IDs, c.Flags) }
		done = "Flag(s) successfully added!"
	case backend.RemoveFlags:
		apply = func(b *backend.Backend) error { return b.RemoveFlags(ctx, folder, c.IDs, c.Flags) }
		done = "Flag(s) successfully removed!"
	case backend.SetFlags:
		apply = func(b *backend.Backend) error { return b.SetFlags(ctx, folder, c.IDs, c.Flags) }
		done = "Flag(s) successfully replaced!"
	default:
		return fmt.Errorf("%s is not a flag operation", c.Op)
	}

	_, b, err := env.open(ctx, c.Account, func(r *backend.Registration) {
		r.Enable(c.Op)
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	if err := apply(b); err != nil {
		return err
	}
	return env.Printer.Print(done)
}
