// Package configs reads the documents that describe a studio and a caller.
//
// # Settings Document
//
// The studio settings document (settings.toml) is written by the settings
// editor and only read here:
//
//   - [topology]: drive and install modes
//   - [studio]: projects root, local mount, scratch, known tools, probe timeout
//   - [studio.paths]: the shared tool table
//   - [defaults]: global setting defaults, the lowest merge layer
//   - [developer]: debug and dev flags
//   - [machines.<host>]: per-host corrections
//
// A missing document is ErrConfigMissing. Nothing here invents a topology.
//
// # Machine and User Files
//
// Each machine may carry a machine.toml under the user config directory;
// it beats the studio's [machines] entry per key. Each user may carry a
// config.toml whose [overrides] table is the top merge layer.
//
// # Runtime Options
//
// LoadRuntime resolves where the documents live and who is calling, from
// LUCID_* environment variables and bound flags via viper.
//
// # Layers
//
// Merge flattens sparse setting layers left to right: global defaults,
// then project overrides, then user overrides.
package configs
