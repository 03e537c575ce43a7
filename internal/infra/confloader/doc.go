// Package confloader provides configuration loading for shardmap tools.
//
// It uses koanf to merge several sources into a typed struct:
//
//   - Files: YAML
//   - Environment: SHARDMAP_<SECTION>_<KEY>
//   - Overrides: flat maps, used for command-line flags
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags)
//  2. Environment variables
//  3. Configuration file
//  4. Default values already present in the target struct
//
// A Watcher reports writes to the configuration file so long-running
// commands can re-apply settings such as the log level.
package confloader
