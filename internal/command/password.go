package command

import (
	"context"
	"fmt"

	"github.com/brandon/mailctl/internal/config"
	"github.com/brandon/mailctl/internal/credential"
)

// Secrets stores account passwords
type Secrets interface {
	Set(key, password string) error
	Delete(key string) error
}

// passwordKey returns the keyring entry configured for protocol, or the
// default one of the account
func passwordKey(acc *config.AccountConfig, protocol string) (key string, configured bool) {
	var explicit string
	switch protocol {
	case credential.ProtocolIMAP:
		explicit = acc.IMAP.PasswordKeyring
	case credential.ProtocolSMTP:
		explicit = acc.SMTP.PasswordKeyring
	}
	if explicit != "" {
		return explicit, true
	}
	return credential.Key(acc.Name, protocol), false
}

// PasswordSet stores the password an account uses for a protocol in the
// keyring
type PasswordSet struct {
	Account  string
	Protocol string
	Password string
}

// Execute runs the command
func (c *PasswordSet) Execute(ctx context.Context, env *Env) error {
	env.Logger.WithField("protocol", c.Protocol).Info("Executing set password command")

	acc, err := env.Backends.GetAccount(c.Account)
	if err != nil {
		return err
	}
	protocol, err := credential.ParseProtocol(c.Protocol)
	if err != nil {
		return err
	}

	key, configured := passwordKey(acc, protocol)
	if err := env.Secrets.Set(key, c.Password); err != nil {
		return err
	}
	if err := env.Printer.Print(fmt.Sprintf("Password stored in the keyring as %q!", key)); err != nil {
		return err
	}
	if !configured {
		return env.Printer.Log(fmt.Sprintf("Set password_keyring = %q in the %s section of account %s to use it.", key, protocol, acc.Name))
	}
	return nil
}

// PasswordDelete removes the password an account uses for a protocol from
// the keyring, after confirmation
type PasswordDelete struct {
	Account  string
	Protocol string
}

// Execute runs the command
func (c *PasswordDelete) Execute(ctx context.Context, env *Env) error {
	env.Logger.WithField("protocol", c.Protocol).Info("Executing delete password command")

	acc, err := env.Backends.GetAccount(c.Account)
	if err != nil {
		return err
	}
	protocol, err := credential.ParseProtocol(c.Protocol)
	if err != nil {
		return err
	}

	key, _ := passwordKey(acc, protocol)
	ok, err := env.Confirmer.Confirm(fmt.Sprintf("Do you really want to delete the password %q from the keyring?", key))
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	if err := env.Secrets.Delete(key); err != nil {
		return err
	}
	return env.Printer.Print(fmt.Sprintf("Password %q successfully deleted!", key))
}
