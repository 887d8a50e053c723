package tans

import (
	"math/big"
	"slices"
	"unsafe"
)

// Keys
//
// A key is a non-negative integer. Key 0 is the root and stands for the
// empty sequence. Every other key k is slot k-1 of the state space, which is
// cut into generations of Total() consecutive slots: slot s lies in
// generation s / Total() at offset s % Total(), and the spread table says
// which channel owns that offset. Numbering keys from slot+1 keeps the root
// out of the image of Forward, so every step strictly grows the key.

// Forward returns the key reached from state by appending the symbol of
// channel ch:
//
//	q, r := state / count(ch), state % count(ch)
//	next := q*Total() + Offsets(ch)[r] + 1
//
// It panics if state is negative or ch is out of range.
func (t *Table) Forward(state *big.Int, ch int) *big.Int {
	if state.Sign() < 0 {
		panic("tans: Forward of negative state")
	}
	return t.forward(new(big.Int), state, ch, new(big.Int))
}

// forward sets dst to Forward(state, ch) and returns it. rem is scratch
// space. dst may alias state.
func (t *Table) forward(dst, state *big.Int, ch int, rem *big.Int) *big.Int {
	dst.QuoRem(state, t.bigCounts[ch], rem)
	slot := t.offsets[ch][rem.Uint64()]
	dst.Mul(dst, t.bigTotal)
	return dst.Add(dst, rem.SetUint64(slot+1))
}

// LastChannel returns the channel whose symbol was appended last to reach
// state. It returns false for the root, which has no last symbol, and for
// negative states.
func (t *Table) LastChannel(state *big.Int) (int, bool) {
	if state.Sign() <= 0 {
		return 0, false
	}
	slot := t.slotOf(state, new(big.Int), new(big.Int))
	return int(t.slotChannel[slot]), true
}

// Parent returns the key state was reached from, so that
//
//	Forward(Parent(k), c) == k  where  c, _ := LastChannel(k)
//
// holds for every k > 0. The parent of the root is the root.
// It panics if state is negative.
func (t *Table) Parent(state *big.Int) *big.Int {
	switch state.Sign() {
	case -1:
		panic("tans: Parent of negative state")
	case 0:
		return new(big.Int)
	}
	dst := new(big.Int)
	t.parent(dst, state, new(big.Int))
	return dst
}

// slotOf returns the generation offset of key state > 0 and leaves its
// generation index in gen. rem is scratch space.
func (t *Table) slotOf(state, gen, rem *big.Int) uint64 {
	gen.Sub(state, bigOne)
	gen.QuoRem(gen, t.bigTotal, rem)
	return rem.Uint64()
}

// parent sets dst to the parent of key state > 0 and returns the channel
// that was appended to it. rem is scratch space. dst may alias state.
func (t *Table) parent(dst, state, rem *big.Int) int {
	slot := t.slotOf(state, dst, rem)
	ch := int(t.slotChannel[slot])
	dst.Mul(dst, t.bigCounts[ch])
	dst.Add(dst, rem.SetUint64(t.slotRank[slot]))
	return ch
}

var bigOne = big.NewInt(1)

// Encode folds input into a key, starting from the root. Encoding empty
// input yields 0. A byte that is not part of the table's alphabet aborts the
// call with an *UnknownSymbolError.
func (t *Table) Encode(input []byte) (*big.Int, error) {
	var (
		state = new(big.Int)
		rem   = new(big.Int)
		prev  *big.Int
	)
	for pos, b := range input {
		ch := t.byteChannel[b]
		if ch == noChannel {
			return nil, &UnknownSymbolError{Symbol: b, Pos: pos}
		}
		if t.logger != nil {
			prev = new(big.Int).Set(state)
		}
		t.forward(state, state, ch, rem)
		if t.logger != nil {
			t.logger.Printf("tans: encode pos=%d symbol=%q channel=%d state=%s next=%s", pos, b, ch, prev, state)
		}
	}
	return state, nil
}

// EncodeString is Encode for a string input.
func (t *Table) EncodeString(s string) (*big.Int, error) {
	return t.Encode(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Decode unfolds key back into the sequence it was encoded from. Decoding 0
// yields an empty, non-nil slice. A nil or negative key, or one that would
// decode to more than the configured MaxDecodeLen symbols, is rejected with
// an *InvalidStateError.
func (t *Table) Decode(key *big.Int) ([]byte, error) {
	if key == nil {
		return nil, &InvalidStateError{Reason: "nil key"}
	}
	if key.Sign() < 0 {
		return nil, &InvalidStateError{State: new(big.Int).Set(key), Reason: "negative key"}
	}

	var (
		out   = []byte{}
		state = new(big.Int).Set(key)
		rem   = new(big.Int)
	)
	// parent strictly decreases a positive key, so the loop ends at the root.
	for state.Sign() > 0 {
		if t.maxDecodeLen > 0 && len(out) == t.maxDecodeLen {
			return nil, &InvalidStateError{State: new(big.Int).Set(key), Reason: "decodes to more than MaxDecodeLen symbols"}
		}
		var cur string
		if t.logger != nil {
			cur = state.String()
		}
		ch := t.parent(state, state, rem)
		sym := t.channels[ch].sym
		out = append(out, sym)
		if t.logger != nil {
			t.logger.Printf("tans: decode state=%s symbol=%q channel=%d parent=%s", cur, sym, ch, state)
		}
	}
	slices.Reverse(out)
	return out, nil
}

// Node describes one key of the state space and its neighbours.
type Node struct {
	Key      *big.Int
	Parent   *big.Int   // nil for the root
	Channel  int        // channel of the last appended symbol; -1 for the root
	Symbol   byte       // last appended symbol; zero for the root
	Children []*big.Int // Children[c] == Forward(Key, c)
}

// IsRoot reports whether n is the root of the state space.
func (n Node) IsRoot() bool { return n.Parent == nil }

// Node returns the neighbourhood of key: its parent, the symbol that led to
// it and the key reached by appending each channel.
func (t *Table) Node(key *big.Int) (Node, error) {
	if key == nil {
		return Node{}, &InvalidStateError{Reason: "nil key"}
	}
	if key.Sign() < 0 {
		return Node{}, &InvalidStateError{State: new(big.Int).Set(key), Reason: "negative key"}
	}

	n := Node{
		Key:      new(big.Int).Set(key),
		Channel:  -1,
		Children: make([]*big.Int, len(t.channels)),
	}
	if key.Sign() > 0 {
		n.Parent = new(big.Int)
		n.Channel = t.parent(n.Parent, key, new(big.Int))
		n.Symbol = t.channels[n.Channel].sym
	}
	rem := new(big.Int)
	for c := range t.channels {
		n.Children[c] = t.forward(new(big.Int), key, c, rem)
	}
	return n, nil
}
