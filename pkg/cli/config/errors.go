package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidCatalog = goerr.New("invalid hotel catalog")
)
