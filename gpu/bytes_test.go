package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	assert.Nil(t, Bytes([]float32(nil)))
	assert.Len(t, Bytes([]float32{1, 2, 3}), 12)
	assert.Len(t, Bytes([]uint32{1, 2}), 8)
	assert.Equal(t, []byte{7, 8}, Bytes([]uint8{7, 8}))
}

func TestFloat32sRoundTrip(t *testing.T) {
	in := []float32{-0.5, 0.25, 1e6}
	out := Float32s(Bytes(in))
	assert.Equal(t, in, out)
	assert.Nil(t, Float32s([]byte{1, 2, 3}))
}
