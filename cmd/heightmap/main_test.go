package main

import (
	"testing"

	"voxelstream/internal/world"
)

type rampField struct{}

func (rampField) HeightAt(x, _ int) int { return x }

func TestRenderNormalizesRange(t *testing.T) {
	img, lo, hi := render(rampField{}, 10, 0, 4, false)
	if lo != 10 || hi != 13 {
		t.Fatalf("range: got %d..%d, want 10..13", lo, hi)
	}
	if got := img.GrayAt(0, 2).Y; got != 0 {
		t.Fatalf("lowest column: got %d, want 0", got)
	}
	if got := img.GrayAt(3, 1).Y; got != 255 {
		t.Fatalf("highest column: got %d, want 255", got)
	}
}

func TestRenderFlatFieldIsBlack(t *testing.T) {
	img, lo, hi := render(world.FlatField{Height: 7}, -5, -5, 8, false)
	if lo != 7 || hi != 7 {
		t.Fatalf("range: got %d..%d, want 7..7", lo, hi)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatalf("flat field pixel %d, want 0", v)
		}
	}
}

func TestRenderGridDarkensChunkBorders(t *testing.T) {
	img, _, _ := render(rampField{}, 30, 0, 4, true)
	// x=32 sits on a chunk border: full value 255*2/3 halved.
	if got, want := img.GrayAt(2, 1).Y, uint8(170/2); got != want {
		t.Fatalf("border column: got %d, want %d", got, want)
	}
	if got := img.GrayAt(3, 1).Y; got != 255 {
		t.Fatalf("interior column: got %d, want 255", got)
	}
}
