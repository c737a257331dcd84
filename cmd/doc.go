// Package cmd implements the command-line interface for the sercheck
// serializer verification harness. It provides a hierarchical command
// structure covering the spawned server process and the client-side tools.
//
// The package is organized into several subpackages:
//
//   - serve: The verification server process image spawned by the supervisor
//   - check: Round-trips the fixture corpus through a spawned server
//   - bench: In-process timing comparison of registered serializers
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See sercheck -help for a list of all commands.
package cmd
