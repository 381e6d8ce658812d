// Package runtime wires storage, configuration and the domain facades
// for a single-node instance. Transports and the CLI construct one
// Runtime and share it.
package runtime
