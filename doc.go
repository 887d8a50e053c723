// Package tans maps byte sequences to single integer keys and back using a
// table-based Asymmetric Numeral System without renormalization.
//
// # Overview
//
// A Table is built once from a fixed symbol distribution: every distinct
// byte becomes a channel, ordered by descending frequency (ties by byte
// value). The table then spreads the Total() slots of a generation over the
// channels round-robin, so that each channel owns as many slots as its
// count and frequent channels own slots scattered evenly through the
// generation.
//
// Encoding starts at key 0 and, for every input byte, moves to the key
// Forward(key, channel). Decoding walks Parent from the key back to 0 and
// collects the symbols in reverse. The mapping is a bijection: every
// non-negative integer is the key of exactly one sequence over the
// alphabet.
//
// # Key Growth
//
// Keys are math/big integers and grow without bound. No bits are ever
// emitted to keep the state in a fixed width; a key for n symbols has
// roughly n times the entropy of the distribution in bits. Use it for
// short sequences, enumeration or ranking, not for bulk compression.
//
// # Basic Usage
//
//	input := []byte("Hello")
//	tbl, err := tans.Train([][]byte{input})
//	if err != nil {
//	    return err
//	}
//
//	key, err := tbl.Encode(input) // *big.Int
//	if err != nil {
//	    return err
//	}
//	original, err := tbl.Decode(key)
//
//	// Or build from a known distribution
//	tbl, err = tans.BuildTable([]tans.Frequency{
//	    {Symbol: 'a', Count: 3},
//	    {Symbol: 'b', Count: 1},
//	}, 4)
//
// # Concurrency
//
// A Table is immutable once built. Encode, Decode and the state transition
// functions may be called from multiple goroutines without locking.
//
// # Performance Characteristics
//
// Building: O(Total() × channels) for the spread, O(Total()) memory.
// Encoding: one big-integer division and multiplication per input byte.
// Decoding: one big-integer division and multiplication per output byte;
// channel and parent lookups are O(1) through a per-slot reverse index.
package tans
