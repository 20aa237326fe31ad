package delay

import (
	"errors"
	"testing"
)

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("New(0) error = %v, want ErrInvalidCapacity", err)
	}

	if _, err := New(-1); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("New(-1) error = %v, want ErrInvalidCapacity", err)
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Capacity() != 16 {
		t.Fatalf("Capacity: got %d want 16", d.Capacity())
	}

	if d.Len() != 0 {
		t.Fatalf("Len before SetLength: got %d want 0", d.Len())
	}
}

func TestSetLengthValidation(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		length int
		valid  bool
	}{
		{name: "zero", length: 0},
		{name: "negative", length: -3},
		{name: "over capacity", length: 9},
		{name: "one", length: 1, valid: true},
		{name: "capacity", length: 8, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.SetLength(tt.length)
			if tt.valid {
				if err != nil {
					t.Fatalf("SetLength(%d) error = %v", tt.length, err)
				}
				if d.Len() != tt.length {
					t.Fatalf("Len: got %d want %d", d.Len(), tt.length)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLength) {
				t.Fatalf("SetLength(%d) error = %v, want ErrInvalidLength", tt.length, err)
			}
		})
	}
}

func TestSetLengthRewindsWriteHead(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(8); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 6; i++ {
		d.Write(float64(i))
	}
	if d.WriteIndex() != 6 {
		t.Fatalf("WriteIndex: got %d want 6", d.WriteIndex())
	}

	if err := d.SetLength(4); err != nil {
		t.Fatal(err)
	}
	if d.WriteIndex() != 0 {
		t.Fatalf("WriteIndex after shrink: got %d want 0", d.WriteIndex())
	}
}

// --- step discipline ---

func TestStepDelaysByLength(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(5); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		got := d.Step(float64(i + 1))
		want := 0.0
		if i >= 5 {
			want = float64(i + 1 - 5)
		}
		if got != want {
			t.Fatalf("step %d: got %v want %v", i, got, want)
		}
	}
}

func TestWriteIndexWrapsModuloLength(t *testing.T) {
	d, err := New(100)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(3); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		if idx := d.WriteIndex(); idx < 0 || idx >= d.Len() {
			t.Fatalf("step %d: write index %d outside [0, %d)", i, idx, d.Len())
		}
		if want := i % 3; d.WriteIndex() != want {
			t.Fatalf("step %d: write index %d want %d", i, d.WriteIndex(), want)
		}
		d.Write(1)
	}
}

func TestHeadroomUntouched(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(4); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		d.Write(1)
	}

	for i := 4; i < d.Capacity(); i++ {
		if d.buffer[i] != 0 {
			t.Fatalf("buffer[%d] = %v, want untouched 0", i, d.buffer[i])
		}
	}
}

func TestDelayedThenWrite(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(2); err != nil {
		t.Fatal(err)
	}

	// Feed back half of each delayed sample, as a comb would.
	in := []float64{1, 0, 0, 0, 0, 0}
	want := []float64{0, 0, 1, 0, 0.5, 0}
	for i, x := range in {
		delayed := d.Delayed()
		d.Write(x + 0.5*delayed)
		if delayed != want[i] {
			t.Fatalf("sample %d: got %v want %v", i, delayed, want[i])
		}
	}
}

func TestColdStartSilence(t *testing.T) {
	for _, length := range []int{1, 2, 7, 64, 128} {
		d, err := New(128)
		if err != nil {
			t.Fatal(err)
		}
		if err := d.SetLength(length); err != nil {
			t.Fatal(err)
		}
		d.Clear()

		for i := 0; i < 2*length; i++ {
			if got := d.Step(0); got != 0 {
				t.Fatalf("length %d step %d: got %v want 0", length, i, got)
			}
		}
	}
}

// --- Read / Clear ---

func TestReadRelativeToWriteHead(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(8); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
	if got := d.Read(8); got != d.Delayed() {
		t.Fatalf("Read(Len()) = %v, want Delayed() = %v", got, d.Delayed())
	}
	if got := d.Read(0); got != 0 {
		t.Fatalf("Read(0) = %v, want 0", got)
	}
	if got := d.Read(9); got != 0 {
		t.Fatalf("Read(9) = %v, want 0", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(10)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(4); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(float64(i))
	}
	// active store holds [8, 9, 6, 7], writePos=2
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	if got := d.Read(4); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

func TestClearIdempotent(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetLength(17); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 45; i++ {
		d.Write(float64(i) - 3.5)
	}

	for round := 0; round < 2; round++ {
		d.Clear()
		if d.Len() != 17 {
			t.Fatalf("Len after Clear: got %d want 17", d.Len())
		}
		for k := 1; k <= d.Len(); k++ {
			if got := d.Read(k); got != 0 {
				t.Fatalf("round %d Read(%d): got %v want 0", round, k, got)
			}
		}
	}
}
