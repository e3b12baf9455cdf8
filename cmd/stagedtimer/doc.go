// Package main hosts the stagedtimer CLI entrypoint and command graph.
//
// The root command runs a staged countdown built from -n/-t flag pairs, a
// configured preset or a plan file. Subcommands list presets, print or save
// plans, scaffold and validate configuration, and send a test notification.
package main
