// Package cmd provides the subcommands of the modulista CLI: formatting
// block-language files, importing them into the item database, rendering
// and listing stored lists, folding expressions, writing the configuration
// file, and the interactive shell.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file. It is also the name of the list in that file
	// holding flag values.
	ConfigIdentifier = "config"

	// DatabaseIdentifier is the kong variable identifier containing the path
	// to the default item database.
	DatabaseIdentifier = "database"
)
