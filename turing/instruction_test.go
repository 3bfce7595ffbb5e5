package turing

import (
	"errors"
	"testing"
)

func TestParseInstruction(t *testing.T) {
	for _, c := range []struct {
		in   string
		want Instruction
	}{
		{"q01q20L", Instruction{0, true, 2, false, Left}},
		{"q10q11S", Instruction{1, false, 1, true, Stay}},
		{"q11q21R", Instruction{1, true, 2, true, Right}},
		{"q120q71R", Instruction{12, false, 7, true, Right}},
		// Digits are greedy: the last digit before q is always the value.
		{"q100q11S", Instruction{10, false, 1, true, Stay}},
		{"q0071q0000L", Instruction{7, true, 0, false, Left}},
	} {
		got, err := ParseInstruction(c.in)
		if err != nil {
			t.Errorf("ParseInstruction(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseInstruction(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseInstructionInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"q1q11R",
		"q10q1R",
		"q10q11",
		"q10q11X",
		"q12q11R",
		"Q10q11R",
		"q10q11RR",
		" q10q11R",
		"q-10q11R",
		"qa0q11R",
	} {
		if _, err := ParseInstruction(in); !errors.Is(err, ErrInvalidInstruction) {
			t.Errorf("ParseInstruction(%q) error = %v, want ErrInvalidInstruction", in, err)
		}
	}
}

func TestInstructionString(t *testing.T) {
	for in, want := range map[string]string{
		"q01q20L":  "q0 1 -> q2 0 L",
		"q10q11S":  "q1 0 -> q1 1 S",
		"q150q01R": "q15 0 -> q0 1 R",
	} {
		i, err := ParseInstruction(in)
		if err != nil {
			t.Fatal(err)
		}
		if g := i.String(); g != want {
			t.Errorf("%q String() = %q, want %q", in, g, want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for c, want := range map[byte]Direction{'L': Left, 'S': Stay, 'R': Right} {
		d, ok := ParseDirection(c)
		if !ok || d != want {
			t.Errorf("ParseDirection(%q) = %v, %v, want %v, true", c, d, ok, want)
		}
		if g := d.String(); g != string(c) {
			t.Errorf("%v.String() = %q, want %q", d, g, string(c))
		}
	}
	if _, ok := ParseDirection('l'); ok {
		t.Error("ParseDirection('l') succeeded")
	}
}
