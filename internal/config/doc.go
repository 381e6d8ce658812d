// Package config loads stockd configuration.
//
// Precedence, lowest to highest: built-in defaults, an optional JSON or
// YAML file, then STOCKD_* environment variables. Flags applied by the
// CLI sit above all three.
package config
