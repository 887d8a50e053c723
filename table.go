package tans

import (
	"log"
	"math/big"
	"strconv"
	"strings"
)

// tableMaxTotal bounds the generation size so the per-slot reverse index
// stays addressable.
const tableMaxTotal = 1 << 30

// Table holds the spread table of a fixed symbol distribution and maps byte
// sequences to integer keys and back.
//
// A Table is created via BuildTable (or Train) and is never modified
// afterwards, so a single Table may be shared by concurrent Encode and
// Decode calls.
type Table struct {
	// Channel layout
	channels    []channel        // descending count, ascending symbol on ties
	byteChannel [alphabetMax]int // byte -> channel index, noChannel if absent
	total       uint64           // generation size, sum of all counts

	// Spread table
	// offsets[c] lists the slots of one generation owned by channel c in
	// increasing order. slotChannel and slotRank invert it: slot s belongs
	// to channel slotChannel[s] at position slotRank[s] of its offsets.
	offsets     [][]uint64
	slotChannel []uint8
	slotRank    []uint64

	// Arbitrary-precision copies of total and the channel counts, used as
	// read-only operands by the state transition functions.
	bigTotal  *big.Int
	bigCounts []*big.Int

	maxDecodeLen int         // 0 means unbounded
	logger       *log.Logger // nil means silent
}

// TableConfig carries the optional parameters of a Table.
// The zero value is a valid configuration.
type TableConfig struct {
	// MaxDecodeLen caps the number of symbols Decode will unfold from a
	// single key. Keys that would decode to more symbols are rejected with
	// an InvalidStateError. Zero means no limit.
	MaxDecodeLen int

	// Logger receives the channel layout when the table is built and one
	// line per step while encoding and decoding. Nil disables logging.
	Logger *log.Logger
}

// Verify checks the configuration for errors.
func (c TableConfig) Verify() error {
	if c.MaxDecodeLen < 0 {
		return configErrorf("negative MaxDecodeLen %d", c.MaxDecodeLen)
	}
	return nil
}

// BuildTable builds a Table from freqs, whose counts must be positive and
// sum to total, using the default configuration.
func BuildTable(freqs []Frequency, total uint64) (*Table, error) {
	return TableConfig{}.BuildTable(freqs, total)
}

// BuildTable builds a Table from freqs, whose counts must be positive and
// sum to total. Any problem with the distribution is reported as a
// *ConfigurationError.
func (c TableConfig) BuildTable(freqs []Frequency, total uint64) (*Table, error) {
	if err := c.Verify(); err != nil {
		return nil, err
	}
	if total > tableMaxTotal {
		return nil, configErrorf("total %d exceeds maximum %d", total, tableMaxTotal)
	}
	chans, err := newChannels(freqs, total)
	if err != nil {
		return nil, err
	}

	t := &Table{
		channels:     chans,
		total:        total,
		bigTotal:     new(big.Int).SetUint64(total),
		bigCounts:    make([]*big.Int, len(chans)),
		maxDecodeLen: c.MaxDecodeLen,
		logger:       c.Logger,
	}
	for i := range t.byteChannel {
		t.byteChannel[i] = noChannel
	}
	for i, ch := range chans {
		t.byteChannel[ch.sym] = i
		t.bigCounts[i] = new(big.Int).SetUint64(ch.count)
	}

	t.spread()
	if err := t.buildIndex(); err != nil {
		return nil, err
	}
	t.logLayout()
	return t, nil
}

// BuildTable builds a Table from the distribution d.
func (d Distribution) BuildTable() (*Table, error) {
	return BuildTable(d.Frequencies, d.Total)
}

// spread assigns every slot of a generation to a channel.
//
// A cursor walks the channels round-robin. Whenever the channel under the
// cursor has not reached its count yet it takes the next slot. Frequent
// channels therefore keep taking slots after the rare ones ran out, which
// spreads their slots more densely and more evenly across the generation.
func (t *Table) spread() {
	var (
		n        = len(t.channels)
		offsets  = make([][]uint64, n)
		assigned = make([]uint64, n)
		slot     uint64
		cursor   int
	)
	for i, ch := range t.channels {
		offsets[i] = make([]uint64, 0, ch.count)
	}

	// Terminates: while slot < total some channel still has quota and the
	// cursor reaches it within n steps.
	for slot < t.total {
		if assigned[cursor] < t.channels[cursor].count {
			offsets[cursor] = append(offsets[cursor], slot)
			assigned[cursor]++
			slot++
		}
		cursor = (cursor + 1) % n
	}
	t.offsets = offsets
}

// buildIndex inverts the spread table into slotChannel/slotRank and checks
// that the offsets partition [0, total): every slot owned by exactly one
// channel, each channel's offsets strictly increasing and as many as its
// count.
func (t *Table) buildIndex() error {
	var (
		owned = make([]bool, t.total)
		seen  uint64
	)
	t.slotChannel = make([]uint8, t.total)
	t.slotRank = make([]uint64, t.total)

	for c, offs := range t.offsets {
		if uint64(len(offs)) != t.channels[c].count {
			return configErrorf("channel %d owns %d slots, want %d", c, len(offs), t.channels[c].count)
		}
		for rank, slot := range offs {
			switch {
			case slot >= t.total:
				return configErrorf("channel %d slot %d outside generation of %d", c, slot, t.total)
			case owned[slot]:
				return configErrorf("slot %d assigned twice", slot)
			case rank > 0 && slot <= offs[rank-1]:
				return configErrorf("channel %d offsets not increasing at %d", c, rank)
			}
			owned[slot] = true
			t.slotChannel[slot] = uint8(c)
			t.slotRank[slot] = uint64(rank)
			seen++
		}
	}
	if seen != t.total {
		return configErrorf("%d of %d slots assigned", seen, t.total)
	}
	return nil
}

func (t *Table) logLayout() {
	if t.logger == nil {
		return
	}
	t.logger.Printf("tans: table with %d channels, generation size %d", len(t.channels), t.total)
	for c, ch := range t.channels {
		t.logger.Printf("tans: channel %d symbol=%q count=%d offsets=%s", c, ch.sym, ch.count, formatOffsets(t.offsets[c]))
	}
}

// formatOffsets renders at most the first 16 offsets of a channel.
func formatOffsets(offs []uint64) string {
	const limit = 16
	var sb strings.Builder
	sb.WriteByte('[')
	for i, o := range offs {
		if i == limit {
			sb.WriteString(" ...")
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(o, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// NumChannels reports the alphabet size.
func (t *Table) NumChannels() int { return len(t.channels) }

// Total reports the generation size, the sum of all counts.
func (t *Table) Total() uint64 { return t.total }

// Channel returns the symbol and count of channel ch.
// It panics if ch is out of range.
func (t *Table) Channel(ch int) (sym byte, count uint64) {
	c := t.channels[ch]
	return c.sym, c.count
}

// ChannelOf returns the channel index of sym, and false if sym is not part
// of the alphabet.
func (t *Table) ChannelOf(sym byte) (int, bool) {
	ch := t.byteChannel[sym]
	return ch, ch != noChannel
}

// Symbols returns the alphabet in channel order.
func (t *Table) Symbols() []byte {
	syms := make([]byte, len(t.channels))
	for i, ch := range t.channels {
		syms[i] = ch.sym
	}
	return syms
}

// Offsets returns a copy of the generation-relative slots owned by channel
// ch, in increasing order. It panics if ch is out of range.
func (t *Table) Offsets(ch int) []uint64 {
	out := make([]uint64, len(t.offsets[ch]))
	copy(out, t.offsets[ch])
	return out
}
