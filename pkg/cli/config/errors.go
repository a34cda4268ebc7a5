package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig        = goerr.New("invalid configuration")
	ErrEmptyPropertyName    = goerr.New("property name must not be empty")
	ErrDuplicatePropertyID  = goerr.New("duplicate property name")
	ErrDuplicateSelectLabel = goerr.New("type labels must differ")
	ErrUnknownProvider      = goerr.New("unknown LLM provider")
)

// Context keys for error values
const (
	ConfigPathKey   = "config_path"
	PropertyKey     = "property"
	PropertyNameKey = "property_name"
	ProviderKey     = "provider"
)
