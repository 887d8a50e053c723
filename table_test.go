package tans

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func helloTable(t testing.TB) *Table {
	t.Helper()
	tbl, err := BuildTable([]Frequency{{'H', 1}, {'e', 1}, {'l', 2}, {'o', 1}}, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return tbl
}

func TestSpreadHello(t *testing.T) {
	tbl := helloTable(t)
	if tbl.NumChannels() != 4 || tbl.Total() != 5 {
		t.Fatalf("channels=%d total=%d", tbl.NumChannels(), tbl.Total())
	}
	want := map[byte][]uint64{
		'l': {0, 4},
		'H': {1},
		'e': {2},
		'o': {3},
	}
	if got := string(tbl.Symbols()); got != "lHeo" {
		t.Fatalf("symbols=%q, want %q", got, "lHeo")
	}
	for ch := range tbl.NumChannels() {
		sym, count := tbl.Channel(ch)
		offs := tbl.Offsets(ch)
		if uint64(len(offs)) != count {
			t.Fatalf("channel %d: %d offsets, count %d", ch, len(offs), count)
		}
		for i, o := range want[sym] {
			if offs[i] != o {
				t.Fatalf("channel %q offsets=%v, want %v", sym, offs, want[sym])
			}
		}
	}
}

func TestSpreadSkewed(t *testing.T) {
	// a:5 b:2 c:1 -> round robin a b c a b a a a
	tbl, err := BuildTable([]Frequency{{'c', 1}, {'b', 2}, {'a', 5}}, 8)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := [][]uint64{{0, 3, 5, 6, 7}, {1, 4}, {2}}
	for ch, w := range want {
		got := tbl.Offsets(ch)
		if len(got) != len(w) {
			t.Fatalf("channel %d offsets=%v, want %v", ch, got, w)
		}
		for i := range w {
			if got[i] != w[i] {
				t.Fatalf("channel %d offsets=%v, want %v", ch, got, w)
			}
		}
	}
}

func TestSpreadPartition(t *testing.T) {
	inputs := []string{
		"Hello",
		"aaa",
		"This is just a test!",
		"the quick brown fox jumps over the lazy dog",
		strings.Repeat("ab", 50) + "xyz",
	}
	for _, in := range inputs {
		tbl, err := TrainStrings([]string{in})
		if err != nil {
			t.Fatalf("train %q: %v", in, err)
		}
		assertPartition(t, tbl)
	}
}

func assertPartition(t *testing.T, tbl *Table) {
	t.Helper()
	seen := make([]bool, tbl.Total())
	for ch := range tbl.NumChannels() {
		offs := tbl.Offsets(ch)
		for i, o := range offs {
			if o >= tbl.Total() {
				t.Fatalf("channel %d offset %d outside [0,%d)", ch, o, tbl.Total())
			}
			if seen[o] {
				t.Fatalf("offset %d assigned twice", o)
			}
			if i > 0 && o <= offs[i-1] {
				t.Fatalf("channel %d offsets not increasing: %v", ch, offs)
			}
			seen[o] = true
			if int(tbl.slotChannel[o]) != ch || tbl.slotRank[o] != uint64(i) {
				t.Fatalf("reverse index wrong at slot %d", o)
			}
		}
	}
	for o, ok := range seen {
		if !ok {
			t.Fatalf("offset %d unassigned", o)
		}
	}
}

func TestBuildTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   TableConfig
		freqs []Frequency
		total uint64
	}{
		{"empty_distribution", TableConfig{}, nil, 0},
		{"zero_total", TableConfig{}, []Frequency{{'a', 1}}, 0},
		{"zero_count", TableConfig{}, []Frequency{{'a', 0}}, 1},
		{"count_exceeds_total", TableConfig{}, []Frequency{{'a', 2}}, 1},
		{"too_large", TableConfig{}, []Frequency{{'a', tableMaxTotal + 1}}, tableMaxTotal + 1},
		{"negative_max_decode", TableConfig{MaxDecodeLen: -1}, []Frequency{{'a', 1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := tt.cfg.BuildTable(tt.freqs, tt.total)
			if tbl != nil {
				t.Fatalf("expected no table")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestChannelOf(t *testing.T) {
	tbl := helloTable(t)
	if ch, ok := tbl.ChannelOf('l'); !ok || ch != 0 {
		t.Fatalf("ChannelOf('l')=%d,%v", ch, ok)
	}
	if ch, ok := tbl.ChannelOf('o'); !ok || ch != 3 {
		t.Fatalf("ChannelOf('o')=%d,%v", ch, ok)
	}
	if _, ok := tbl.ChannelOf('x'); ok {
		t.Fatalf("ChannelOf('x') should be absent")
	}
}

func TestOffsetsIsCopy(t *testing.T) {
	tbl := helloTable(t)
	offs := tbl.Offsets(0)
	offs[0] = 99
	if tbl.Offsets(0)[0] != 0 {
		t.Fatalf("Offsets exposed internal storage")
	}
}

func TestTableLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := TableConfig{Logger: log.New(&buf, "", 0)}
	tbl, err := cfg.BuildTable([]Frequency{{'H', 1}, {'e', 1}, {'l', 2}, {'o', 1}}, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(buf.String(), "channel 0 symbol='l' count=2 offsets=[0 4]") {
		t.Fatalf("layout not logged:\n%s", buf.String())
	}

	buf.Reset()
	key, err := tbl.EncodeString("Hello")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := strings.Count(buf.String(), "tans: encode "); got != 5 {
		t.Fatalf("expected 5 encode lines, got %d:\n%s", got, buf.String())
	}

	buf.Reset()
	if _, err := tbl.Decode(key); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(buf.String(), "decode state=454 symbol='o' channel=3 parent=90") {
		t.Fatalf("decode step not logged:\n%s", buf.String())
	}
}

func TestFormatOffsetsTruncates(t *testing.T) {
	offs := make([]uint64, 20)
	for i := range offs {
		offs[i] = uint64(i)
	}
	got := formatOffsets(offs)
	if !strings.HasPrefix(got, "[0 1 2") || !strings.HasSuffix(got, "15 ...]") {
		t.Fatalf("formatOffsets=%q", got)
	}
}

func BenchmarkBuildTable(b *testing.B) {
	d := Count(bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog. "), 200))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := d.BuildTable(); err != nil {
			b.Fatal(err)
		}
	}
}
