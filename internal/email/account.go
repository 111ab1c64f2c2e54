package email

import (
	"fmt"

	"github.com/brandon/mailctl/internal/config"
)

// AccountManager resolves the configured email accounts
type AccountManager struct {
	config   *config.Config
	accounts map[string]*config.AccountConfig
}

// NewAccountManager creates a new account manager
func NewAccountManager(cfg *config.Config) (*AccountManager, error) {
	if len(cfg.Accounts) == 0 {
		return nil, fmt.Errorf("no email accounts configured")
	}

	manager := &AccountManager{
		config:   cfg,
		accounts: make(map[string]*config.AccountConfig),
	}
	for i := range cfg.Accounts {
		accCfg := &cfg.Accounts[i]
		manager.accounts[accCfg.Name] = accCfg
	}

	return manager, nil
}

// GetAccount returns an account by name, or the default account when
// name is empty
func (m *AccountManager) GetAccount(name string) (*config.AccountConfig, error) {
	if name == "" {
		if acc := m.config.GetDefaultAccount(); acc != nil {
			return acc, nil
		}
		return nil, fmt.Errorf("no default account")
	}
	account, exists := m.accounts[name]
	if !exists {
		return nil, fmt.Errorf("account not found: %s", name)
	}
	return account, nil
}

// ListAccounts returns all account names
func (m *AccountManager) ListAccounts() []string {
	return m.config.AccountNames()
}
