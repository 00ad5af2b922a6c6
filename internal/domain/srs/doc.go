// Package srs implements the spaced repetition scheduling algorithm, a
// simplified SM-2 derivative with a minutes-scale learning phase. All
// transitions are pure functions of the prior state, the rating, and the
// review time; callers persist the returned state.
//
// The package also computes the review priority score used by card
// selection, since it is derived entirely from scheduling state.
package srs
