package email

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
)

// RegistryFunc returns the registry of an account
type RegistryFunc func(acc *config.AccountConfig) *backend.Registry

// Manager assembles per-invocation backends for the configured accounts
type Manager struct {
	accountManager *AccountManager
	registry       RegistryFunc
	logger         *logrus.Logger
}

// NewManager creates a new email manager using every compiled-in backend
// kind. lookup fetches keyring secrets.
func NewManager(cfg *config.Config, logger *logrus.Logger, lookup SecretLookup) (*Manager, error) {
	return NewManagerWithRegistry(cfg, logger, func(acc *config.AccountConfig) *backend.Registry {
		return NewRegistry(acc, logger, lookup)
	})
}

// NewManagerWithRegistry creates a new email manager building backends
// from the registries returned by registry
func NewManagerWithRegistry(cfg *config.Config, logger *logrus.Logger, registry RegistryFunc) (*Manager, error) {
	accountManager, err := NewAccountManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create account manager: %w", err)
	}

	return &Manager{
		accountManager: accountManager,
		registry:       registry,
		logger:         logger,
	}, nil
}

// GetAccount returns an account by name, or the default one
func (m *Manager) GetAccount(name string) (*config.AccountConfig, error) {
	return m.accountManager.GetAccount(name)
}

// ListAccounts returns all account names
func (m *Manager) ListAccounts() []string {
	return m.accountManager.ListAccounts()
}

// Backend assembles a backend for account with the operations requested
// by register. The caller owns the backend and must close it.
func (m *Manager) Backend(ctx context.Context, account *config.AccountConfig, register func(r *backend.Registration)) (*backend.Backend, error) {
	builder := backend.NewBuilder(account, m.registry(account), m.logger)
	b, err := builder.Build(ctx, register)
	if err != nil {
		return nil, err
	}

	m.logger.WithField("account", account.Name).Debug("Backend ready")
	return b, nil
}
