package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/brandon/mailctl/internal/backend"
)

// Config holds the application configuration
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	DownloadsDir string `mapstructure:"downloads_dir"`

	// Accounts, keyed by name in the configuration file
	Accounts []AccountConfig `mapstructure:"-"`
}

// AccountConfig holds configuration for a single email account
type AccountConfig struct {
	Name        string `mapstructure:"-"`
	Default     bool   `mapstructure:"default"`
	Email       string `mapstructure:"email"`
	DisplayName string `mapstructure:"display_name"`

	// Backend serves every storage operation unless overridden
	Backend string `mapstructure:"backend"`
	// Sender serves SendMessage unless overridden
	Sender string `mapstructure:"sender"`

	SaveCopy     *bool  `mapstructure:"save_copy"`
	SentFolder   string `mapstructure:"sent_folder"`
	DownloadsDir string `mapstructure:"downloads_dir"`
	SyncDir      string `mapstructure:"sync_dir"`

	IMAP       IMAPConfig       `mapstructure:"imap"`
	Maildir    MaildirConfig    `mapstructure:"maildir"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Sendmail   SendmailConfig   `mapstructure:"sendmail"`
	Operations OperationsConfig `mapstructure:"operations"`
}

// IMAPConfig holds IMAP settings
type IMAPConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	PasswordKeyring string `mapstructure:"password_keyring"`
	Insecure        bool   `mapstructure:"insecure"`
}

// MaildirConfig holds Maildir settings
type MaildirConfig struct {
	Root string `mapstructure:"root"`
}

// SMTPConfig holds SMTP settings
type SMTPConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	PasswordKeyring string `mapstructure:"password_keyring"`
}

// SendmailConfig holds sendmail settings
type SendmailConfig struct {
	Cmd string `mapstructure:"cmd"`
}

// OperationsConfig overrides the backend of single operations
type OperationsConfig struct {
	FolderList   string `mapstructure:"folder_list"`
	FolderAdd    string `mapstructure:"folder_add"`
	FolderDelete string `mapstructure:"folder_delete"`
	EnvelopeList string `mapstructure:"envelope_list"`
	MessageGet   string `mapstructure:"message_get"`
	MessagePeek  string `mapstructure:"message_peek"`
	MessageAdd   string `mapstructure:"message_add"`
	MessageSend  string `mapstructure:"message_send"`
	FlagAdd      string `mapstructure:"flag_add"`
	FlagRemove   string `mapstructure:"flag_remove"`
	FlagSet      string `mapstructure:"flag_set"`
}

func (o *OperationsConfig) get(op backend.Operation) string {
	switch op {
	case backend.ListFolders:
		return o.FolderList
	case backend.AddFolder:
		return o.FolderAdd
	case backend.DeleteFolder:
		return o.FolderDelete
	case backend.ListEnvelopes:
		return o.EnvelopeList
	case backend.GetMessages:
		return o.MessageGet
	case backend.PeekMessages:
		return o.MessagePeek
	case backend.AddMessage:
		return o.MessageAdd
	case backend.SendMessage:
		return o.MessageSend
	case backend.AddFlags:
		return o.FlagAdd
	case backend.RemoveFlags:
		return o.FlagRemove
	case backend.SetFlags:
		return o.FlagSet
	}
	return ""
}

// DefaultConfigPath returns the default path of the configuration file
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mailctl", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// LoadConfig loads configuration from a TOML file, with MAILCTL_*
// environment overrides. Without any configured account, a single
// account is read from environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("mailctl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("downloads_dir", defaultDownloadsDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	accounts, err := loadAccounts(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	if len(accounts) == 0 && hasEnvAccount() {
		accounts = append(accounts, loadEnvAccount())
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no email accounts configured")
	}

	for i := range accounts {
		accounts[i].applyDefaults(cfg)
	}

	cfg.Accounts = accounts
	return cfg, nil
}

// loadAccounts reads the [accounts.<name>] tables, sorted by name
func loadAccounts(v *viper.Viper) ([]AccountConfig, error) {
	tables := v.GetStringMap("accounts")
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	accounts := make([]AccountConfig, 0, len(names))
	for _, name := range names {
		var acc AccountConfig
		if err := v.UnmarshalKey("accounts."+name, &acc); err != nil {
			return nil, fmt.Errorf("account %s: %w", name, err)
		}
		acc.Name = name
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// hasEnvAccount checks if single account configuration exists in the
// environment
func hasEnvAccount() bool {
	return getEnv("IMAP_HOST", "") != "" || getEnv("MAILDIR_ROOT", "") != ""
}

// loadEnvAccount loads a single account from environment variables
func loadEnvAccount() AccountConfig {
	name := getEnv("ACCOUNT_NAME", "default")
	return AccountConfig{
		Name:    name,
		Default: true,
		Email:   getEnv("ACCOUNT_EMAIL", ""),
		IMAP: IMAPConfig{
			Host:     getEnv("IMAP_HOST", ""),
			Port:     getEnvInt("IMAP_PORT", 993),
			Username: getEnv("IMAP_USERNAME", ""),
			Password: getEnv("IMAP_PASSWORD", ""),
		},
		Maildir: MaildirConfig{
			Root: getEnv("MAILDIR_ROOT", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		},
		Sendmail: SendmailConfig{
			Cmd: getEnv("SENDMAIL_CMD", ""),
		},
	}
}

func (a *AccountConfig) applyDefaults(cfg *Config) {
	if a.Backend == "" {
		switch {
		case a.IMAP.Host != "":
			a.Backend = backend.KindIMAP.String()
		case a.Maildir.Root != "":
			a.Backend = backend.KindMaildir.String()
		}
	}
	if a.Sender == "" {
		switch {
		case a.SMTP.Host != "":
			a.Sender = backend.KindSMTP.String()
		case a.Sendmail.Cmd != "":
			a.Sender = backend.KindSendmail.String()
		}
	}
	if a.IMAP.Host != "" && a.IMAP.Port == 0 {
		a.IMAP.Port = 993
	}
	if a.SMTP.Host != "" && a.SMTP.Port == 0 {
		a.SMTP.Port = 587
	}
	if a.SentFolder == "" {
		a.SentFolder = "Sent"
	}
	if a.DownloadsDir == "" {
		a.DownloadsDir = cfg.DownloadsDir
	}
	a.DownloadsDir = expandHome(a.DownloadsDir)
	a.Maildir.Root = expandHome(a.Maildir.Root)
	if a.SyncDir == "" {
		a.SyncDir = defaultSyncDir(a.Name)
	}
	a.SyncDir = expandHome(a.SyncDir)
}

// AccountName returns the account name
func (a *AccountConfig) AccountName() string {
	return a.Name
}

// BackendKind returns the kind configured for op: the per-operation
// override, else the sender for SendMessage and the default backend for
// every other operation
func (a *AccountConfig) BackendKind(op backend.Operation) (backend.Kind, bool) {
	name := a.Operations.get(op)
	if name == "" {
		if op == backend.SendMessage {
			name = a.Sender
		} else {
			name = a.Backend
		}
	}
	if name == "" || name == "none" {
		return 0, false
	}
	kind, err := backend.ParseKind(name)
	if err != nil {
		return 0, false
	}
	return kind, true
}

// SaveCopySentMessage reports whether sent messages are copied to the
// sent folder. Defaults to true.
func (a *AccountConfig) SaveCopySentMessage() bool {
	return a.SaveCopy == nil || *a.SaveCopy
}

// DownloadFilePath returns a free path for filename in the downloads
// directory, suffixing the name with _1, _2... when it is taken
func (a *AccountConfig) DownloadFilePath(filename string) (string, error) {
	if err := os.MkdirAll(a.DownloadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	path := filepath.Join(a.DownloadsDir, base)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		path = filepath.Join(a.DownloadsDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}

// ResolvePassword returns the configured password, or the one stored in
// the keyring under keyringKey
func ResolvePassword(password, keyringKey string, lookup func(string) (string, error)) (string, error) {
	if password != "" || keyringKey == "" {
		return password, nil
	}
	if lookup == nil {
		return "", fmt.Errorf("no keyring available for %q", keyringKey)
	}
	return lookup(keyringKey)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func defaultDownloadsDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Downloads")
	}
	return os.TempDir()
}

func defaultSyncDir(account string) string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "mailctl", account)
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "mailctl", account)
}

// GetAccountByName finds an account by name
func (c *Config) GetAccountByName(name string) (*AccountConfig, error) {
	for i := range c.Accounts {
		if c.Accounts[i].Name == name {
			return &c.Accounts[i], nil
		}
	}
	return nil, fmt.Errorf("account not found: %s", name)
}

// GetDefaultAccount returns the account marked as default, else the
// account named "default", else the first account
func (c *Config) GetDefaultAccount() *AccountConfig {
	if len(c.Accounts) == 0 {
		return nil
	}

	for i := range c.Accounts {
		if c.Accounts[i].Default {
			return &c.Accounts[i]
		}
	}

	for i := range c.Accounts {
		if c.Accounts[i].Name == "default" {
			return &c.Accounts[i]
		}
	}

	return &c.Accounts[0]
}

// Account returns the named account, or the default one when name is empty
func (c *Config) Account(name string) (*AccountConfig, error) {
	if name == "" {
		if acc := c.GetDefaultAccount(); acc != nil {
			return acc, nil
		}
		return nil, fmt.Errorf("no email accounts configured")
	}
	return c.GetAccountByName(name)
}

// Validate validates the configuration. Operations configured with a kind
// that cannot serve them are not errors: they are reported as unavailable
// when invoked.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account must be configured")
	}

	defaults := 0
	for i := range c.Accounts {
		acc := &c.Accounts[i]
		if acc.Default {
			defaults++
		}

		for _, name := range []string{acc.Backend, acc.Sender} {
			if err := validateKindName(name); err != nil {
				return fmt.Errorf("account %s: %w", acc.Name, err)
			}
		}
		for _, op := range backend.Operations() {
			if err := validateKindName(acc.Operations.get(op)); err != nil {
				return fmt.Errorf("account %s: %s: %w", acc.Name, op, err)
			}
		}

		if acc.IMAP.Host != "" && (acc.IMAP.Port < 1 || acc.IMAP.Port > 65535) {
			return fmt.Errorf("account %s: invalid IMAP port", acc.Name)
		}
		if acc.SMTP.Host != "" && (acc.SMTP.Port < 1 || acc.SMTP.Port > 65535) {
			return fmt.Errorf("account %s: invalid SMTP port", acc.Name)
		}
	}

	if defaults > 1 {
		return fmt.Errorf("only one account can be marked as default")
	}

	return nil
}

func validateKindName(name string) error {
	if name == "" || name == "none" {
		return nil
	}
	_, err := backend.ParseKind(name)
	return err
}

// AccountNames returns a list of all account names
func (c *Config) AccountNames() []string {
	names := make([]string, len(c.Accounts))
	for i := range c.Accounts {
		names[i] = c.Accounts[i].Name
	}
	return names
}
