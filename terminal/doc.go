// Package terminal is the tcell-backed I/O and render backend of the runtime.
//
// Features:
//   - TTY precondition probe before any raw-mode switch
//   - Input pump translating tcell events into event.Input
//   - Frame drawing with wide-rune aware text placement
//   - Exactly-once restoration on Close, plus EmergencyReset for crash paths
//
// NewSimulation runs the same Terminal over tcell's in-memory screen for tests
// and headless use.
package terminal
