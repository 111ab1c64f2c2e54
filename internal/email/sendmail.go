//go:build !nosendmail

package email

import (
	"context"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/sendmail"
)

func init() {
	installers = append(installers, installSendmail)
}

func installSendmail(reg *backend.Registry, acc *config.AccountConfig, env *environment) {
	reg.RegisterHandle(backend.KindSendmail, func(ctx context.Context) (backend.Handle, error) {
		s, err := sendmail.New(ctx, &acc.Sendmail, env.logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	registerCapabilities[*sendmail.Sender](reg, backend.KindSendmail)
}
