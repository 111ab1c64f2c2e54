//go:build !nosmtp

package email

import (
	"context"
	"fmt"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/smtp"
)

func init() {
	installers = append(installers, installSMTP)
}

func installSMTP(reg *backend.Registry, acc *config.AccountConfig, env *environment) {
	reg.RegisterHandle(backend.KindSMTP, func(ctx context.Context) (backend.Handle, error) {
		if acc.SMTP.Host == "" {
			return nil, fmt.Errorf("SMTP host is not configured")
		}
		password, err := config.ResolvePassword(acc.SMTP.Password, acc.SMTP.PasswordKeyring, env.lookup)
		if err != nil {
			return nil, err
		}
		c, err := smtp.Dial(ctx, acc.Name, &acc.SMTP, password, env.logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
	registerCapabilities[*smtp.Client](reg, backend.KindSMTP)
}
