package command

import (
	"context"
	"fmt"

	"github.com/brandon/mailctl/internal/backend"
)

// DefaultPageSize is the number of envelopes listed per page
const DefaultPageSize = 10

// EnvelopeList lists one page of envelopes of a folder
type EnvelopeList struct {
	Account  string
	Folder   string
	Page     int
	PageSize int
}

// Execute runs the command. Page numbers start at 1.
func (c *EnvelopeList) Execute(ctx context.Context, env *Env) error {
	env.Logger.Info("Executing list envelopes command")

	if c.Page < 1 {
		return fmt.Errorf("invalid page %d: pages start at 1", c.Page)
	}
	pageSize := c.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	_, b, err := env.open(ctx, c.Account, func(r *backend.Registration) {
		r.Enable(backend.ListEnvelopes)
	})
	if err != nil {
		return err
	}
	defer env.release(b)

	envelopes, err := b.ListEnvelopes(ctx, folderOrInbox(c.Folder), c.Page-1, pageSize)
	if err != nil {
		return err
	}
	return env.Printer.Envelopes(envelopes)
}

func folderOrInbox(folder string) string {
	if folder == "" {
		return "INBOX"
	}
	return folder
}
