// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the command lifecycle (export, levels,
// serve), decoupled from any specific entrypoint like a CLI.
package app
