//go:build !nomaildir

package email

import (
	"context"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/maildir"
)

func init() {
	installers = append(installers, installMaildir)
}

func installMaildir(reg *backend.Registry, acc *config.AccountConfig, env *environment) {
	reg.RegisterHandle(backend.KindMaildir, func(ctx context.Context) (backend.Handle, error) {
		s, err := maildir.Open(ctx, acc.Name, acc.Maildir.Root, env.logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	registerCapabilities[*maildir.Store](reg, backend.KindMaildir)
}
