// Package cmd implements the ctorcli subcommands.
package cmd

// RegistryIdentifier is the kong variable holding the default name of
// generated registry files.
var RegistryIdentifier = "registryFile"
