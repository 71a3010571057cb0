package d20

import "github.com/spf13/viper"

// Default roll ceilings and cache sizing, overridable via viper (an
// environment variable or a ".d20go.yaml" dotfile), matching the defaults
// cmd/root.go registers.
const (
	DefaultMaxRolls         = 1000
	DefaultMaxASTOperations = 10000
	DefaultAllowComments    = false
	DefaultCacheSize        = 256
)

// Config bounds and configures a Roller.
type Config struct {
	MaxRolls         int
	MaxASTOperations int
	AllowComments    bool
	CacheSize        int
}

// DefaultConfig returns the built-in ceilings, unaffected by viper.
func DefaultConfig() Config {
	return Config{
		MaxRolls:         DefaultMaxRolls,
		MaxASTOperations: DefaultMaxASTOperations,
		AllowComments:    DefaultAllowComments,
		CacheSize:        DefaultCacheSize,
	}
}

// ConfigFromViper reads a Config from the global viper instance, falling
// back to DefaultConfig's values for any key that was never set. cmd/root.go
// is responsible for registering the "max_rolls", "max_ast_operations",
// "allow_comments", and "cache_size" defaults at startup.
func ConfigFromViper() Config {
	cfg := DefaultConfig()
	if viper.IsSet("max_rolls") {
		cfg.MaxRolls = viper.GetInt("max_rolls")
	}
	if viper.IsSet("max_ast_operations") {
		cfg.MaxASTOperations = viper.GetInt("max_ast_operations")
	}
	if viper.IsSet("allow_comments") {
		cfg.AllowComments = viper.GetBool("allow_comments")
	}
	if viper.IsSet("cache_size") {
		cfg.CacheSize = viper.GetInt("cache_size")
	}
	return cfg
}
