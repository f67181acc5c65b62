// meta/meta.go
package meta

// UpdateBuffer is the default number of session updates kept for readers.
const UpdateBuffer = 64

// DEFAULT_SEED seeds random layouts when no seed is given.
const DEFAULT_SEED = 1

// MAX_SCRIPT_MOVES caps how many moves a script may ask for.
const MAX_SCRIPT_MOVES = 1000
