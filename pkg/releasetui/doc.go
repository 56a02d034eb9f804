// Package releasetui provides the terminal front ends of the release
// workflow: a Bubble Tea interface for interactive terminals and a plain line
// reporter for pipes and quiet mode.
package releasetui
