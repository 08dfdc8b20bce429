// Package cmd provides the command-line interface for the delta site.
//
// # Available Commands
//
//   - serve: Start the site with live sessions and content hot reload
//   - export: Render the page and its assets to a directory
//   - validate: Load and check a content catalog
//   - sections: List the page sections
//   - version: Show build information
//
// # Command Examples
//
//	// Serve on another port with a custom catalog, reloading on change
//	delta serve --port 3000 --content ./content.yml --watch
//
//	// Render a static copy of the page
//	delta export --out dist
//
//	// Check a catalog before deploying it
//	delta validate ./content.yml --format json
//
// # Configuration Integration
//
// Commands read configuration from, in order of precedence:
//
//  1. Command-line flags
//  2. Environment variables (DELTA_*)
//  3. Configuration file (.delta.yml or DELTA_CONFIG_FILE)
//  4. Default values
package cmd
