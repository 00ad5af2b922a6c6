// Package session owns the combined game/review session: the state machine
// that sequences card selection, spaced repetition scheduling, and combat
// resolution per turn, plus the save/load lifecycle and the per-key session
// registry that serializes access for the transport layer.
package session
