// Package config loads the Hausgeist JSONC configuration.
package config

// Config is the root configuration for Hausgeist.
type Config struct {
	Store    StoreConfig   `json:"store"`
	Rules    RulesConfig   `json:"rules"`
	Gateway  GatewayConfig `json:"gateway"`
	Family   FamilyConfig  `json:"family"`
	LogLevel string        `json:"log_level"` // debug, info, warn, error
}

// StoreConfig locates the task database.
type StoreConfig struct {
	Path string `json:"path"` // SQLite file (default: $HAUSGEIST_PATH/hausgeist.db)
}

// RulesConfig locates the rule document.
type RulesConfig struct {
	Path string `json:"path"` // YAML file (default: $HAUSGEIST_PATH/rules.yaml)
}

// GatewayConfig holds the HTTP gateway settings.
type GatewayConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// FamilyConfig lists household members. Used for display; the message
// parser recognizes a fixed set of names.
type FamilyConfig struct {
	Members []string `json:"members"`
}
