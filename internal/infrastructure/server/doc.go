// Package server wires the launcher together and runs it.
//
// NewServer builds the controller, its launch strategy and the optional
// admin API from configuration. Run drives the operator console and the
// admin API until the console exits or the context is cancelled, then
// closes every app that is still running.
package server
