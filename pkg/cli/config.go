package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/adrg/xdg"
	"gopkg.in/ini.v1"

	"firebolt-cli/pkg/fb"
)

const (
	configSection  = "firebolt-cli"
	keyringService = "firebolt-cli"
	secretKey      = "client_secret"
)

// ConfigPath returns the location of firebolt.ini under the user config
// directory.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "firebolt.ini")
}

// ReadConfig loads stored parameters from the config file and the client
// secret from the OS keyring. A missing file or unavailable keyring yields
// an empty config, not an error.
func ReadConfig() (*fb.Config, error) {
	cfg := &fb.Config{}

	path := ConfigPath()
	if _, err := os.Stat(path); err == nil {
		file, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		section := file.Section(configSection)
		cfg.ClientID = section.Key("client_id").String()
		cfg.AccountName = section.Key("account_name").String()
		cfg.Database = section.Key("database_name").String()
		cfg.Engine = section.Key("engine_name").String()
		cfg.APIEndpoint = section.Key("api_endpoint").String()
	}

	if secret, err := readSecret(); err == nil {
		cfg.ClientSecret = secret
	}

	return cfg, nil
}

// UpdateConfig writes the given parameters to the config file; the client
// secret is routed to the OS keyring instead. An empty value deletes the
// parameter, a key absent from values is left untouched.
func UpdateConfig(values map[string]string) error {
	if secret, ok := values[secretKey]; ok {
		if err := writeSecret(secret); err != nil {
			return err
		}
		delete(values, secretKey)
	}

	if len(values) == 0 {
		return nil
	}

	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	file := ini.Empty()
	if _, err := os.Stat(path); err == nil {
		file, err = ini.Load(path)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	section := file.Section(configSection)
	for key, value := range values {
		if value == "" {
			section.DeleteKey(key)
			continue
		}
		section.Key(key).SetValue(value)
	}

	return file.SaveTo(path)
}

// ResolveConfig layers the precedence chain onto the stored config:
// config file < FIREBOLT_* environment < command-line flags.
func ResolveConfig(flags fb.Config) (*fb.Config, error) {
	cfg, err := ReadConfig()
	if err != nil {
		return nil, err
	}

	overlay(&cfg.ClientID, os.Getenv("FIREBOLT_CLIENT_ID"), flags.ClientID)
	overlay(&cfg.ClientSecret, os.Getenv("FIREBOLT_CLIENT_SECRET"), flags.ClientSecret)
	overlay(&cfg.AccountName, os.Getenv("FIREBOLT_ACCOUNT_NAME"), flags.AccountName)
	overlay(&cfg.Database, os.Getenv("FIREBOLT_DATABASE_NAME"), flags.Database)
	overlay(&cfg.Engine, os.Getenv("FIREBOLT_ENGINE_NAME"), flags.Engine)
	overlay(&cfg.APIEndpoint, os.Getenv("FIREBOLT_API_ENDPOINT"), flags.APIEndpoint)

	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = fb.DefaultAPIEndpoint
	}
	return cfg, nil
}

func overlay(dst *string, values ...string) {
	for _, v := range values {
		if v != "" {
			*dst = v
		}
	}
}

func openRing() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{ServiceName: keyringService})
}

func readSecret() (string, error) {
	ring, err := openRing()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(secretKey)
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

func writeSecret(value string) error {
	ring, err := openRing()
	if err != nil {
		return fmt.Errorf("failed to open OS keyring: %w", err)
	}

	if value == "" {
		err := ring.Remove(secretKey)
		if err == keyring.ErrKeyNotFound {
			return nil
		}
		return err
	}
	return ring.Set(keyring.Item{Key: secretKey, Data: []byte(value)})
}
