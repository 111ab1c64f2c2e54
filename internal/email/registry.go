package email

import (
	"github.com/sirupsen/logrus"

	"github.com/brandon/mailctl/internal/backend"
	"github.com/brandon/mailctl/internal/config"
)

// SecretLookup fetches a secret from the system keyring
type SecretLookup func(key string) (string, error)

// installer registers one compiled-in backend kind for an account
type installer func(reg *backend.Registry, acc *config.AccountConfig, env *environment)

type environment struct {
	logger *logrus.Logger
	lookup SecretLookup
}

// installers is filled by the build-tagged files of this package
var installers []installer

// NewRegistry returns a registry holding every compiled-in backend kind,
// bound to the settings of acc
func NewRegistry(acc *config.AccountConfig, logger *logrus.Logger, lookup SecretLookup) *backend.Registry {
	reg := backend.NewRegistry()
	env := &environment{logger: logger, lookup: lookup}
	for _, install := range installers {
		install(reg, acc, env)
	}
	return reg
}

// registerCapabilities registers a handle of type T for every operation
// kind supports. The factory leaves the slot empty when T does not
// implement the operation.
func registerCapabilities[T backend.Handle](reg *backend.Registry, kind backend.Kind) {
	for _, op := range backend.Operations() {
		if !backend.Supports(op, kind) {
			continue
		}
		reg.Register(op, kind, backend.Bind(func(t T) (any, bool) {
			return t, backend.Implements(op, t)
		}))
	}
}
