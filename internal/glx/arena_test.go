package glx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingDeleter struct {
	order *[]string
	name  string
}

func (d *recordingDeleter) Delete() { *d.order = append(*d.order, d.name) }

func TestArenaReleasesInReverseOrder(t *testing.T) {
	var order []string
	a := &Arena{}
	a.Track(&recordingDeleter{&order, "first"}, &recordingDeleter{&order, "second"})
	a.Track(&recordingDeleter{&order, "third"})
	a.Release()
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestArenaReleaseTwiceIsNoop(t *testing.T) {
	var order []string
	a := &Arena{}
	a.Track(&recordingDeleter{&order, "only"})
	a.Release()
	a.Release()
	assert.Equal(t, []string{"only"}, order)
}
