//go:build !noimap

package email

import (
	"context"
	"fmt"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/imap"
)

func init() {
	installers = append(installers, installIMAP)
}

func installIMAP(reg *backend.Registry, acc *config.AccountConfig, env *environment) {
	reg.RegisterHandle(backend.KindIMAP, func(ctx context.Context) (backend.Handle, error) {
		if acc.IMAP.Host == "" {
			return nil, fmt.Errorf("IMAP host is not configured")
		}
		password, err := config.ResolvePassword(acc.IMAP.Password, acc.IMAP.PasswordKeyring, env.lookup)
		if err != nil {
			return nil, err
		}
		s, err := imap.Dial(ctx, acc.Name, &acc.IMAP, password, env.logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	registerCapabilities[*imap.Session](reg, backend.KindIMAP)
}
