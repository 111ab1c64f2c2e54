//go:build !nosync && !nomaildir

package email

import (
	"context"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/maildir"
)

func init() {
	installers = append(installers, installMaildirForSync)
}

func installMaildirForSync(reg *backend.Registry, acc *config.AccountConfig, env *environment) {
	reg.RegisterHandle(backend.KindMaildirForSync, func(ctx context.Context) (backend.Handle, error) {
		s, err := maildir.OpenForSync(ctx, acc.Name, acc.SyncDir, env.logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	registerCapabilities[*maildir.Store](reg, backend.KindMaildirForSync)
}
