// Package version contains the current version of the program, split out
// for easy use from cmd/asthrac and anywhere else that reports it.
package version

// Current is the string representing the current version of asthrac.
const Current = "0.1.0"
