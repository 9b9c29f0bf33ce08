// Package terminal provides the display sinks the renderer presents frames on.
//
// Two implementations:
//   - Terminal: direct ANSI output to stdout, no terminfo, no raw mode
//   - TcellSink: a tcell Screen, for terminals where direct sequences misbehave
//
// Terminal enters the alternate screen, disables auto-wrap and hides the
// cursor on Init, and restores all three on Fini. EmergencyReset performs the
// same restoration from a panic handler.
package terminal
