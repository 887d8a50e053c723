package tans

// counters tracks per-byte frequencies of the input a Table is built from.
//
// It is the frequency model of the coder: a flat histogram over the 256
// possible byte values plus the running total. Counters are only used while
// deriving a Distribution and are discarded afterwards.
type counters struct {
	single [alphabetMax]uint64 // occurrences per byte value
	total  uint64              // sum of single
}

// add counts every byte of in.
func (c *counters) add(in []byte) {
	for _, b := range in {
		c.single[b]++
	}
	c.total += uint64(len(in))
}

// nextSingle advances sym to the next byte value with a non-zero count and
// returns that count. Returns 0 (and leaves sym at alphabetMax) when no more
// non-zero counts exist.
func (c *counters) nextSingle(sym *int) uint64 {
	code := *sym
	for code < alphabetMax {
		if n := c.single[code]; n != 0 {
			*sym = code
			return n
		}
		code++
	}
	*sym = code
	return 0
}

// distribution lists the observed symbols in ascending byte order.
func (c *counters) distribution() Distribution {
	d := Distribution{Total: c.total}
	for sym := 0; sym < alphabetMax; sym++ {
		n := c.nextSingle(&sym)
		if n == 0 {
			break
		}
		d.Frequencies = append(d.Frequencies, Frequency{Symbol: byte(sym), Count: n})
	}
	return d
}

// Frequency is the number of times Symbol occurs in the modelled input.
type Frequency struct {
	Symbol byte
	Count  uint64
}

// Distribution is a fixed symbol distribution: the observed symbols with
// their counts, and the total count (the input length). It is the input of
// BuildTable.
type Distribution struct {
	Frequencies []Frequency
	Total       uint64
}

// Count builds the Distribution of all bytes in inputs.
func Count(inputs ...[]byte) Distribution {
	var c counters
	for i := range inputs {
		c.add(inputs[i])
	}
	return c.distribution()
}

// Size reports the number of distinct symbols in d.
func (d Distribution) Size() int { return len(d.Frequencies) }
