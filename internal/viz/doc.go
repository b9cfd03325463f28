// Package viz renders run results in the terminal.
//
//   - [Report]: styled summary of a finished run
//   - [EstimatesPlot], [ConvergencePlot]: asciigraph line charts
//   - [LiveModel]: Bubble Tea view that follows a run as repetitions finish
//
// # Key Bindings
//
//	q, Ctrl+C - cancel the run and quit
package viz
