// Package config holds the presentation settings that sit next to an input
// document: which significance mode to apply, how the raster is ticked, the
// unit of the time axis, unit labels, epoch markers and the panel worker
// count.
//
// Settings are layered explicitly. The CLI starts from Defaults, merges the
// values from a YAML file, then merges flag overrides:
//
//	cfg := config.Merge(config.Defaults(), fileCfg, flagCfg)
//	if err := config.Validate(cfg); err != nil { ... }
//
// There is no package-level mutable state. Every call to Defaults returns a
// fresh value and Merge never modifies its arguments.
package config
