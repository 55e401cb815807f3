package diff

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/hexstorm/internal/engine/buffer"
)

func seq(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func sources(bufs ...*buffer.Buffer) []Source {
	out := make([]Source, len(bufs))
	for i, b := range bufs {
		out[i] = b
	}
	return out
}

func TestComputeIdentical(t *testing.T) {
	a := buffer.NewFromBytes(seq(64))
	b := buffer.NewFromBytes(seq(64))

	m, err := Compute(context.Background(), sources(a, b), Options{})
	if err != nil {
		t.Fatal(err)
	}
	blocks := m.Blocks()
	if len(blocks) != 1 || blocks[0].Kind != Equal {
		t.Fatalf("blocks = %+v, want one Equal block", blocks)
	}
	if sp := blocks[0].Spans[0]; sp.Start != 0 || sp.End != 64 {
		t.Errorf("reference span = %+v, want [0,64)", sp)
	}
	for off := int64(0); off < 64; off += 7 {
		if m.ClassAt(0, off) != Equal || m.ClassAt(1, off) != Equal {
			t.Fatalf("ClassAt(%d) != Equal", off)
		}
	}
}

func TestComputeSingleByteDiffer(t *testing.T) {
	db := seq(32)
	db[5] = 0xF1
	a := buffer.NewFromBytes(seq(32))
	b := buffer.NewFromBytes(db)

	m, err := Compute(context.Background(), sources(a, b), Options{})
	if err != nil {
		t.Fatal(err)
	}

	for off := int64(0); off < 32; off++ {
		want := Equal
		if off == 5 {
			want = Differ
		}
		for f := 0; f < 2; f++ {
			if got := m.ClassAt(f, off); got != want {
				t.Errorf("ClassAt(%d, %d) = %v, want %v", f, off, got, want)
			}
		}
	}
}

func TestComputeInsertionResyncs(t *testing.T) {
	// b is a with four bytes spliced in at offset 16. Everything outside
	// the insertion must stay Equal; the inserted bytes are Missing from
	// the reference's point of view.
	base := seq(32)
	ins := []byte{0xF0, 0xF1, 0xF2, 0xF3}
	with := append(append(append([]byte{}, base[:16]...), ins...), base[16:]...)

	a := buffer.NewFromBytes(base)
	b := buffer.NewFromBytes(with)

	m, err := Compute(context.Background(), sources(a, b), Options{})
	if err != nil {
		t.Fatal(err)
	}

	for off := int64(0); off < 32; off++ {
		if got := m.ClassAt(0, off); got != Equal {
			t.Errorf("reference ClassAt(%d) = %v, want Equal", off, got)
		}
	}
	for off := int64(16); off < 20; off++ {
		if got := m.ClassAt(1, off); got != Missing {
			t.Errorf("other ClassAt(%d) = %v, want Missing", off, got)
		}
	}
	if got := m.ClassAt(1, 20); got != Equal {
		t.Errorf("other ClassAt(20) = %v, want Equal after resync", got)
	}
}

func TestComputeDeletionIsMissing(t *testing.T) {
	// b lacks the reference bytes [16,20).
	base := seq(32)
	copy(base[16:20], []byte{0xF0, 0xF1, 0xF2, 0xF3})
	short := append(append([]byte{}, base[:16]...), base[20:]...)

	a := buffer.NewFromBytes(base)
	b := buffer.NewFromBytes(short)

	m, err := Compute(context.Background(), sources(a, b), Options{})
	if err != nil {
		t.Fatal(err)
	}

	for off := int64(0); off < 32; off++ {
		want := Equal
		if off >= 16 && off < 20 {
			want = Missing
		}
		if got := m.ClassAt(0, off); got != want {
			t.Errorf("reference ClassAt(%d) = %v, want %v", off, got, want)
		}
	}
	_, _, missing := m.KindCounts(0)
	if missing != 4 {
		t.Errorf("missing bytes = %d, want 4", missing)
	}
}

func TestComputeShorterFileTail(t *testing.T) {
	a := buffer.NewFromBytes(seq(20))
	b := buffer.NewFromBytes(seq(12))

	m, err := Compute(context.Background(), sources(a, b), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.ClassAt(0, 11); got != Equal {
		t.Errorf("ClassAt(0, 11) = %v, want Equal", got)
	}
	for off := int64(12); off < 20; off++ {
		if got := m.ClassAt(0, off); got != Missing {
			t.Errorf("ClassAt(0, %d) = %v, want Missing past shorter file's end", off, got)
		}
	}
}

func TestComputeThreeFiles(t *testing.T) {
	d1 := seq(32)
	d1[5] = 0xF1
	d2 := seq(32)
	d2[20] = 0xF2

	ref := buffer.NewFromBytes(seq(32))
	f1 := buffer.NewFromBytes(d1)
	f2 := buffer.NewFromBytes(d2)

	m, err := Compute(context.Background(), sources(ref, f1, f2), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Files() != 3 {
		t.Fatalf("Files = %d, want 3", m.Files())
	}

	// A byte is Differ on the reference if any file disagrees there.
	for off := int64(0); off < 32; off++ {
		want := Equal
		if off == 5 || off == 20 {
			want = Differ
		}
		if got := m.ClassAt(0, off); got != want {
			t.Errorf("ClassAt(0, %d) = %v, want %v", off, got, want)
		}
	}
	if m.ClassAt(1, 5) != Differ || m.ClassAt(1, 20) != Differ {
		t.Error("file 1 classes wrong: 5 differs in f1, 20 differs via reference")
	}
	if m.ClassAt(2, 5) != Differ {
		t.Error("ClassAt(2, 5) should be Differ: the block disagrees even though f2 matches the reference there")
	}
}

func TestComputeMyersMatchesResync(t *testing.T) {
	db := seq(32)
	db[9] = 0xEE

	for _, strategy := range []Strategy{StrategyResync, StrategyMyers} {
		a := buffer.NewFromBytes(seq(32))
		b := buffer.NewFromBytes(db)
		m, err := Compute(context.Background(), sources(a, b), Options{Strategy: strategy})
		if err != nil {
			t.Fatalf("%v: %v", strategy, err)
		}
		for off := int64(0); off < 32; off++ {
			want := Equal
			if off == 9 {
				want = Differ
			}
			if got := m.ClassAt(0, off); got != want {
				t.Errorf("%v: ClassAt(0, %d) = %v, want %v", strategy, off, got, want)
			}
		}
	}
}

func TestComputeMyersInsertion(t *testing.T) {
	base := seq(24)
	ins := []byte{0xF0, 0xF1, 0xF2}
	with := append(append(append([]byte{}, base[:8]...), ins...), base[8:]...)

	a := buffer.NewFromBytes(base)
	b := buffer.NewFromBytes(with)

	m, err := Compute(context.Background(), sources(a, b), Options{Strategy: StrategyMyers})
	if err != nil {
		t.Fatal(err)
	}
	for off := int64(8); off < 11; off++ {
		if got := m.ClassAt(1, off); got != Missing {
			t.Errorf("ClassAt(1, %d) = %v, want Missing", off, got)
		}
	}
	if m.ClassAt(0, 8) != Equal || m.ClassAt(1, 11) != Equal {
		t.Error("bytes outside the insertion should stay Equal")
	}
}

func TestComputeMyersFallsBackOnSizeLimit(t *testing.T) {
	a := buffer.NewFromBytes(seq(64))
	b := buffer.NewFromBytes(seq(64))

	m, err := Compute(context.Background(), sources(a, b), Options{Strategy: StrategyMyers, MyersSizeLimit: 8})
	if err != nil {
		t.Fatal(err)
	}
	if blocks := m.Blocks(); len(blocks) != 1 || blocks[0].Kind != Equal {
		t.Errorf("fallback result = %+v, want one Equal block", blocks)
	}
}

func TestComputeCancelled(t *testing.T) {
	a := buffer.NewFromBytes(seq(256))
	b := buffer.NewFromBytes(seq(256))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compute(ctx, sources(a, b), Options{}); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestComputeNoSources(t *testing.T) {
	if _, err := Compute(context.Background(), nil, Options{}); !errors.Is(err, ErrNoSources) {
		t.Fatalf("err = %v, want ErrNoSources", err)
	}
}

func TestSessionRecomputesOnRevisionChange(t *testing.T) {
	a := buffer.NewFromBytes(seq(32))
	b := buffer.NewFromBytes(seq(32))

	s := NewSession([]Revisioned{a, b}, Options{})
	m1, err := s.Map(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	m2, err := s.Map(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if m1 != m2 {
		t.Error("unchanged buffers should return the cached map")
	}

	if err := b.Replace(3, []byte{0xFF}); err != nil {
		t.Fatal(err)
	}
	m3, err := s.Map(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if m3 == m1 {
		t.Error("mutation should invalidate the cached map")
	}
	if got := m3.ClassAt(0, 3); got != Differ {
		t.Errorf("ClassAt(0, 3) = %v, want Differ after edit", got)
	}
}

func TestSessionInvalidate(t *testing.T) {
	a := buffer.NewFromBytes(seq(8))
	b := buffer.NewFromBytes(seq(8))

	s := NewSession([]Revisioned{a, b}, Options{})
	m1, _ := s.Map(context.Background())
	s.Invalidate()
	m2, _ := s.Map(context.Background())
	if m1 == m2 {
		t.Error("Invalidate should force a fresh map")
	}
}
