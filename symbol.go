package tans

import (
	"cmp"
	"slices"
)

const (
	alphabetMax = 256 // byte alphabet

	// noChannel marks bytes without a channel in Table.byteChannel.
	noChannel = -1
)

// channel is a symbol of the alphabet together with its count. Its index
// within Table.channels is the channel index every other structure refers to.
type channel struct {
	sym   byte
	count uint64
}

// newChannels validates freqs against total and orders them by descending
// count, breaking ties by ascending symbol value so that equal inputs always
// produce equal tables.
func newChannels(freqs []Frequency, total uint64) ([]channel, error) {
	if len(freqs) == 0 {
		return nil, configErrorf("empty alphabet")
	}
	if total == 0 {
		return nil, configErrorf("total count is zero")
	}
	if len(freqs) > alphabetMax {
		return nil, configErrorf("%d symbols exceed the byte alphabet", len(freqs))
	}

	var (
		seen  [alphabetMax]bool
		sum   uint64
		chans = make([]channel, 0, len(freqs))
	)
	for _, f := range freqs {
		switch {
		case f.Count == 0:
			return nil, configErrorf("symbol %#02x has zero count", f.Symbol)
		case f.Count > total:
			return nil, configErrorf("symbol %#02x count %d exceeds total %d", f.Symbol, f.Count, total)
		case seen[f.Symbol]:
			return nil, configErrorf("symbol %#02x listed twice", f.Symbol)
		}
		if sum+f.Count < sum {
			return nil, configErrorf("counts overflow")
		}
		seen[f.Symbol] = true
		sum += f.Count
		chans = append(chans, channel{sym: f.Symbol, count: f.Count})
	}
	if sum != total {
		return nil, configErrorf("counts sum to %d, total is %d", sum, total)
	}

	slices.SortFunc(chans, func(a, b channel) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return cmp.Compare(a.sym, b.sym)
	})
	return chans, nil
}
