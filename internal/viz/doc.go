// Package viz renders runs in the terminal.
//
// [Model] is a Bubble Tea program that steps a [sim.Stepper] on a timer and
// shows the density profile next to a Braille phase-space scatter:
//
//	m := viz.NewModel(stepper, "free-streaming")
//	_, err := tea.NewProgram(m).Run()
//
// [DensityPlot] renders a single snapshot for non-interactive output.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rewind to the initial particles
//	+/-   - Steps per frame
//	P     - Toggle the phase-space panel
//	T     - Cycle palettes
//	Q     - Quit
package viz
