package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups remotefeed credentials in the OS keychain.
const KeyringService = "remotefeed"

// Keyring account names for the credentials that may live in the keychain.
const (
	SecretTelegramToken = "telegram_bot_token"
	SecretSuperJobKey   = "superjob_api_key"
	SecretAdzunaAppID   = "adzuna_app_id"
	SecretAdzunaAppKey  = "adzuna_app_key"
)

// SecretNames lists the accepted account names for SetSecret.
var SecretNames = []string{
	SecretTelegramToken,
	SecretSuperJobKey,
	SecretAdzunaAppID,
	SecretAdzunaAppKey,
}

// SetSecret stores a credential in the OS keychain.
func SetSecret(name, value string) error {
	if !slices.Contains(SecretNames, name) {
		return fmt.Errorf("unknown secret %q (known: %s)", name, strings.Join(SecretNames, ", "))
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("secret %s is empty", name)
	}
	if err := keyring.Set(KeyringService, name, value); err != nil {
		return fmt.Errorf("store %s in keyring: %w", name, err)
	}
	return nil
}

// applyKeyring fills credentials that neither the file nor the environment
// provided. Keyring errors (no keychain, missing entry) leave them empty.
func applyKeyring(cfg *Config) {
	fields := []struct {
		name string
		dst  *string
	}{
		{SecretTelegramToken, &cfg.Telegram.BotToken},
		{SecretSuperJobKey, &cfg.Sources.SuperJobAPIKey},
		{SecretAdzunaAppID, &cfg.Sources.AdzunaAppID},
		{SecretAdzunaAppKey, &cfg.Sources.AdzunaAppKey},
	}
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		if v, err := keyring.Get(KeyringService, f.name); err == nil && strings.TrimSpace(v) != "" {
			*f.dst = v
		}
	}
}
