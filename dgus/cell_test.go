package dgus

import (
	"bytes"
	"errors"
	"testing"

	"dgusbridge/protocol"
)

func TestIntegerCells(t *testing.T) {
	env := &Env{UI: NewUIContext(DefaultPresets())}
	vp := &VP{Addr: 0x2300, Name: "LEVEL_Point", Size: 2}
	point := Field(func(ui *UIContext) *uint8 { return &ui.LevelingPoint })

	rx := IntegerToExtra(point)
	if err := rx(env, vp, []byte{0x00, 0x04}); err != nil {
		t.Fatalf("rx: %v", err)
	}
	if env.UI.LevelingPoint != 4 {
		t.Errorf("Expected 4 in a byte-wide field, got %d", env.UI.LevelingPoint)
	}
	if err := rx(env, vp, []byte{0x05}); !errors.Is(err, ErrIgnored) {
		t.Errorf("Expected ErrIgnored for a short payload, got %v", err)
	}
	if err := IntegerToExtra(Value(func(*Env) uint8 { return 0 }))(env, vp, []byte{0, 1}); !errors.Is(err, ErrIgnored) {
		t.Errorf("Expected ErrIgnored for a read-only cell, got %v", err)
	}

	got, _ := ExtraToInteger(point)(env, vp)
	if !bytes.Equal(got, []byte{0x00, 0x04}) {
		t.Errorf("Expected 00 04, got % X", got)
	}
}

func TestFixedPointCells(t *testing.T) {
	env := &Env{UI: NewUIContext(DefaultPresets())}
	vp := &VP{Addr: 0x4000, Name: "OFFSET", Size: 2}

	var v float64
	cell := Cell[float64]{
		Get: func(*Env) float64 { return v },
		Set: func(_ *Env, x float64) { v = x },
	}
	data := protocol.EncodeFixed(-1.25, protocol.Width16, 2)
	if err := FixedPointToExtra(cell, 2)(env, vp, data); err != nil {
		t.Fatalf("rx: %v", err)
	}
	if v != -1.25 {
		t.Errorf("Expected -1.25, got %v", v)
	}

	got, _ := ExtraToFixedPoint(cell, 2)(env, vp)
	if !bytes.Equal(got, data) {
		t.Errorf("Expected % X, got % X", data, got)
	}
}

func TestStringCell(t *testing.T) {
	env := &Env{UI: NewUIContext(DefaultPresets())}
	vp := &VP{Addr: 0x5000, Name: "TEXT", Size: 4}

	buf := []byte("xxxxxxxx")
	cell := Value(func(*Env) []byte { return buf })
	rx := StringToExtra(cell)

	if err := rx(env, vp, []byte("abcdef")); err != nil {
		t.Fatalf("rx: %v", err)
	}
	if string(buf) != "abcdxxxx" {
		t.Errorf("Expected copy bounded by the VP size, got %q", buf)
	}
	rx(env, vp, []byte("z"))
	if !bytes.Equal(buf, []byte("z\x00\x00\x00xxxx")) {
		t.Errorf("Expected the rest of the VP cleared, got %q", buf)
	}

	out, _ := ExtraToString(Value(func(*Env) string { return "ok" }))(env, vp)
	if !bytes.Equal(out, []byte{'o', 'k', 0, 0}) {
		t.Errorf("Expected zero padding, got % X", out)
	}
}
