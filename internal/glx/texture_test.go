package glx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckerboard(t *testing.T) {
	px := Checkerboard(2)
	assert.Len(t, px, 2*2*4)

	// (0,0) and (1,1) are black, the other diagonal white.
	assert.Equal(t, uint8(CheckerBlack), px[0])
	assert.Equal(t, uint8(CheckerWhite), px[4])
	assert.Equal(t, uint8(CheckerWhite), px[8])
	assert.Equal(t, uint8(CheckerBlack), px[12])

	// Alpha is always opaque.
	for i := 3; i < len(px); i += 4 {
		assert.Equal(t, uint8(0xff), px[i])
	}
}

func TestCheckerboardAlternates(t *testing.T) {
	for _, n := range []int{4, 8} {
		px := Checkerboard(n)
		assert.Len(t, px, n*n*4)
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				want := uint8(CheckerWhite)
				if i%2 == j%2 {
					want = CheckerBlack
				}
				assert.Equal(t, want, px[(j*n+i)*4], "n=%d texel (%d,%d)", n, i, j)
			}
		}
	}
}
