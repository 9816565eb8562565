// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the build lifecycle (load, plan, execute),
// decoupled from any specific entrypoint like a CLI.
package app
