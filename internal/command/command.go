package command

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/printer"
	"github.com/brandon/mailctl/internal/prompt"
)

// Backends resolves accounts and assembles their backends
type Backends interface {
	GetAccount(name string) (*config.AccountConfig, error)
	Backend(ctx context.Context, account *config.AccountConfig, register func(r *backend.Registration)) (*backend.Backend, error)
}

// Env holds the collaborators shared by every command
type Env struct {
	Backends  Backends
	Printer   printer.Printer
	Confirmer prompt.Confirmer
	Secrets   Secrets
	Logger    *logrus.Logger
}

// open resolves the account and assembles its backend
func (e *Env) open(ctx context.Context, account string, register func(r *backend.Registration)) (*config.AccountConfig, *backend.Backend, error) {
	acc, err := e.Backends.GetAccount(account)
	if err != nil {
		return nil, nil, err
	}
	b, err := e.Backends.Backend(ctx, acc, register)
	if err != nil {
		return nil, nil, err
	}
	return acc, b, nil
}

// release closes the backend, logging failures
func (e *Env) release(b *backend.Backend) {
	if err := b.Close(); err != nil {
		e.Logger.WithError(err).Warn("Failed to close backend")
	}
}
