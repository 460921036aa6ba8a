// Package shuffle provides a deterministic seeded permutation.
//
// The same seed and input order always produce the same output order, across
// calls and across process restarts. This lets a session paginate a randomized
// listing consistently without persisting a per-user ordering. It is not
// cryptographically secure and is not meant to be.
package shuffle

// Linear congruential generator constants (glibc variant). The state is kept
// in the low 31 bits so the sequence is identical on every platform.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7fffffff
)

// Slice permutes s in place using a Fisher-Yates pass driven by an LCG seeded
// with seed. Positions are swapped from the end of the slice down to index 1.
func Slice[T any](s []T, seed int64) {
	state := seed & lcgMask
	for i := len(s) - 1; i > 0; i-- {
		state = (state*lcgMultiplier + lcgIncrement) & lcgMask
		j := state % int64(i+1)
		s[i], s[j] = s[j], s[i]
	}
}
