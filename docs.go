/*
Package envcfg loads typed application configuration from environment variables, declared with struct tags.

Features

- derive environment variable names from struct and field names (SCREAMING_SNAKE_CASE with a struct-name prefix);

- defaults, optional fields (pointers), skipped fields and custom per-field parsers;

- read from several file formats (YAML, JSON, TOML, ENV, EDN) with environment variables overlaid on top;

- typed single-variable lookup helpers;

- output environment variable list with descriptions into help output.

Usage

Declare a configuration structure and fill it from the environment:

	type ServerConfig struct {
		Host    string        // SERVER_CONFIG_HOST (required)
		Port    int           `env-default:"8080"` // SERVER_CONFIG_PORT
		Timeout *time.Duration // SERVER_CONFIG_TIMEOUT (optional)
		Debug   bool          `env:"DEBUG_MODE"` // explicit name, no prefix
		Cache   string        `env:"-"` // never read from the environment
	}

	var cfg ServerConfig

	err := envcfg.ReadEnv(&cfg)
	if err != nil {
		...
	}

The prefix is the structure type name converted to SCREAMING_SNAKE_CASE.
Implement the Prefixer interface to replace it, or return an empty string
to disable it:

	func (ServerConfig) EnvPrefix() string { return "SRV" }

Nested structures are read recursively with their own prefix; an
`env-prefix` tag on the holding field overrides it.

Errors

Loading fails with one of two error types: MissingError when a required
variable is not set, and ParsingError when a value cannot be converted
to the field type. Both carry the variable name and the field path.

Lookup helpers

Single variables can be read without a structure:

	port, err := envcfg.LookupOr("PORT", 8080)
	dsn, err := envcfg.Lookup[string]("DATABASE_URL")

For more detailed information check examples and example tests.
*/
package envcfg
