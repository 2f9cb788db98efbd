// Package main implements the boo CLI tool.
//
// The boo tool is a command-line interface that manages the versions of a
// directory of plugins. Every plugin directory has a main file (init.php, else
// index.php) whose header declares a "Plugin Name:" and a "* Version: x.y.z".
// boo lists those versions, moves them up or down by dot-notation deltas,
// optionally packages each updated plugin as a zip archive and commits the
// change with git.
//
// Versions are compared and moved as integers: major*10000 + minor*100 + micro.
// A delta is applied as increase minus decrease, so "-i 0.1.0" turns 1.0.0
// into 1.1.0 and "-d 0.0.1" turns 1.1.0 into 1.0.99. A component pushed past
// 99 carries into the next one. A result of 0.0.0 or below is rejected and the
// file is left untouched.
//
// Command Usage:
//
//	boo [global flags] <command> [flags]
//
// Commands:
//
//	versions      List the plugins of a directory with their versions.
//	update        Update the version of a single plugin.
//	multi-update  Update the versions of every plugin in a directory.
//	self-upgrade  Pull the latest boo sources into its checkout.
//
// Global flags:
//
//	-config:    Config file (TOML or YAML). Defaults to .boo.toml or .boo.yaml
//	            in the working directory when present.
//	-log-level: One of debug, info, warn, error. Defaults to LOG_LEVEL, else warn.
//	-version:   Displays the version of the boo CLI tool and exits.
//
// Examples:
//
//	# List plugin versions as a rounded table
//	boo versions -p ./wp-content/plugins -s rounded
//
//	# Bump one plugin's minor version (1.2.3 → 1.3.3)
//	boo update -p ./wp-content/plugins/hello -i 0.1.0
//
//	# Preview a patch bump of every plugin except "legacy"
//	boo multi-update -p ./wp-content/plugins -i 0.0.1 -e legacy --dry
//
//	# Bump two plugins, zip them into ./dist and commit the result
//	boo multi-update -p ./plugins --include hello --include world -i 0.0.1 -z ./dist -c
//
// In multi-update a plugin that fails is reported in the table and the
// remaining plugins are still updated; the command then exits with status 1.
//
// For the library API see the documentation of the "pkg" package.
package main
