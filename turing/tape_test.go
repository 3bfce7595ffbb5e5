package turing

import (
	"math/rand"
	"testing"
)

func TestTapeReadOutside(t *testing.T) {
	tp := NewTape([]bool{true, false, true})
	for _, pos := range []int{-100, -1, 3, 4, 1000} {
		if tp.Read(pos) {
			t.Errorf("Read(%d) = true, want false", pos)
		}
	}
	if g, w := tp.String(), "101"; g != w {
		t.Errorf("tape is %q after reads, want %q", g, w)
	}
	if g := tp.Offset(); g != 0 {
		t.Errorf("offset is %d after reads, want 0", g)
	}
}

func TestTapeCopiesInput(t *testing.T) {
	cells := []bool{false, false}
	tp := NewTape(cells)
	tp.Write(0, true)
	if cells[0] {
		t.Error("Write mutated the slice passed to NewTape")
	}
}

func TestTapeWrite(t *testing.T) {
	for _, c := range []struct {
		init   string
		writes []int // positions written with true
		want   string
		offset int
	}{
		{"", nil, "", 0},
		{"", []int{0}, "1", 0},
		{"", []int{2}, "001", 0},
		{"", []int{-1}, "1", 1},
		{"", []int{-3}, "100", 3},
		{"01", []int{3}, "0101", 0},
		{"01", []int{-2}, "1001", 2},
		{"01", []int{-2, -1, 4}, "1101001", 2},
		{"000", []int{1}, "010", 0},
	} {
		tp := NewTape(ParseTape(c.init))
		for _, pos := range c.writes {
			tp.Write(pos, true)
		}
		if g := tp.String(); g != c.want {
			t.Errorf("%q after writes %v is %q, want %q", c.init, c.writes, g, c.want)
		}
		if g := tp.Offset(); g != c.offset {
			t.Errorf("%q after writes %v has offset %d, want %d", c.init, c.writes, g, c.offset)
		}
	}
}

func TestTapeCursor(t *testing.T) {
	tp := NewTape(ParseTape("01"))
	tp.Write(-3, true)
	if g, w := tp.String(), "10001"; g != w {
		t.Fatalf("tape is %q, want %q", g, w)
	}
	for pos, want := range map[int]int{-3: 0, 0: 3, 1: 4, 5: 8} {
		if g := tp.Cursor(pos); g != want {
			t.Errorf("Cursor(%d) = %d, want %d", pos, g, want)
		}
	}
}

// Reads return the last value written at a position, and blank everywhere
// else, whatever the order of writes. The offset never decreases.
func TestTapeRandomWrites(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for run := 0; run < 50; run++ {
		var (
			tp      = NewTape(nil)
			written = map[int]bool{}
			offset  = 0
		)
		for i := 0; i < 200; i++ {
			pos, v := rnd.Intn(101)-50, rnd.Intn(2) == 1
			tp.Write(pos, v)
			written[pos] = v
			if o := tp.Offset(); o < offset {
				t.Fatalf("offset decreased from %d to %d", offset, o)
			} else {
				offset = o
			}
			tp.Read(rnd.Intn(201) - 100)
			if o := tp.Offset(); o != offset {
				t.Fatalf("Read changed offset from %d to %d", offset, o)
			}
		}
		for pos := -60; pos <= 60; pos++ {
			if g, w := tp.Read(pos), written[pos]; g != w {
				t.Fatalf("run %d: Read(%d) = %v, want %v", run, pos, g, w)
			}
		}
	}
}
