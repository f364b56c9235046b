// Package styles provides shared lipgloss styles for terminal output.
//
// Styles always emit ANSI sequences; writers wrapped with colorprofile
// downsample or strip them for the actual terminal.
package styles

import "charm.land/lipgloss/v2"

// Colors used throughout the output
var (
	// Primary is the main accent color (cyan/teal)
	Primary = lipgloss.Color("62")

	// Success marks resolved paths (green)
	Success = lipgloss.Color("82")

	// Error is used for error messages (red)
	Error = lipgloss.Color("196")

	// Warning is used for hints such as suggestions (orange)
	Warning = lipgloss.Color("214")

	// Muted is used for secondary text (gray)
	Muted = lipgloss.Color("240")
)

var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle applies the primary color
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// WarningStyle applies the warning color
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)
