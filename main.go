package main

import (
	"assetctl/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// The assetctl project is a macOS asset-inventory tool that:
//   - Reads hardware facts (serial number, hardware UUID, model, CPU, memory,
//     storage, MAC addresses, battery charge, OS version) from the kernel's
//     sysctl interface and the IOKit device registry
//   - Prints each collected fact as a "<Field>: <value>" line, omitting any
//     field whose read failed rather than aborting the report
//   - Optionally resolves the marketing model description over HTTP using the
//     last four characters of the serial number, caching successful lookups
//     in a local JSON file so repeated runs skip the network
//   - Exposes thin wrappers over the `networksetup` utility for enabling,
//     disabling, and reordering network services
//
// Error handling strategy:
//   - Every inventory field is independently optional: a failed sysctl read or
//     registry query omits that one output line and the collection continues
//   - Command-level failures (bad arguments, failed networksetup invocations)
//     exit with a non-zero status so scripts can detect them
func main() {
	cmd.Execute()
}
