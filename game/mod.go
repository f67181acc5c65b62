// Package game holds the rules of a two-army capture game played on a
// 10x10 grid: army composition, board topology, placement, movement legality
// and combat. It performs no I/O and keeps no global state.
package game

// StateHash identifies a board occupancy, e.g. to tag session updates.
type StateHash uint64
