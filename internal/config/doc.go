// Package config loads trip-keeper settings.
//
// Three sources are read on every start: environment variables, command-line
// flags and a JSON file named by CONFIG, -c or -config. They are merged in
// that order and a non-zero value from a later source wins. The server uses
// [GetStructuredConfig] plus [StructuredConfig.ValidateServer]; the client
// uses [GetClientConfig], which also fills sync defaults.
package config
