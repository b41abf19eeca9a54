// Package viz renders experiments in the terminal.
//
// [Model] is a Bubble Tea program that advances one output sample per frame
// and shows the first state component, the step size history and the
// integrator counters. The styles and chart helpers are shared with the CLI.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild the experiment and start over
//	Q     - Quit
package viz
