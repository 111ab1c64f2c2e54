package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "mailctl"

// Protocols that authenticate with a password
const (
	ProtocolIMAP = "imap"
	ProtocolSMTP = "smtp"
)

// ErrNotFound is returned when no password is stored under a key
var ErrNotFound = errors.New("password not found in keyring")

// Key returns the keyring entry holding the password an account uses for
// protocol, e.g. "work/imap"
func Key(account, protocol string) string {
	return account + "/" + protocol
}

// ParseProtocol validates a protocol name
func ParseProtocol(s string) (string, error) {
	switch s {
	case ProtocolIMAP, ProtocolSMTP:
		return s, nil
	}
	return "", fmt.Errorf("unknown protocol %q (expected %s or %s)", s, ProtocolIMAP, ProtocolSMTP)
}

// Opener opens the keyring holding account passwords
type Opener func() (keyring.Keyring, error)

// Keyring reads and writes account passwords. The underlying keyring is
// opened on every call so a locked keychain only prompts when needed.
type Keyring struct {
	open Opener
}

// New returns a Keyring backed by the keyrings returned by open
func New(open Opener) *Keyring {
	return &Keyring{open: open}
}

// System returns the Keyring of the operating system
func System() *Keyring {
	return New(openSystem)
}

func openSystem() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
		},
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return ring, nil
}

// Get returns the password stored under key
func (k *Keyring) Get(key string) (string, error) {
	ring, err := k.open()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read password %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores password under key, replacing any previous value
func (k *Keyring) Set(key, password string) error {
	if password == "" {
		return fmt.Errorf("empty password for %q", key)
	}
	ring, err := k.open()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(password),
		Label:       "mailctl " + key,
		Description: "mailctl account password",
	})
	if err != nil {
		return fmt.Errorf("failed to store password %q: %w", key, err)
	}
	return nil
}

// Delete removes the password stored under key
func (k *Keyring) Delete(key string) error {
	ring, err := k.open()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to delete password %q: %w", key, err)
	}
	return nil
}
