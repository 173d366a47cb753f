package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorBlobRoundTrip(t *testing.T) {
	vecs := [][]float32{
		{0.1, -0.2, 0.3},
		{1},
		nil,
	}
	for _, vec := range vecs {
		blob := encodeVector(vec)
		back, err := decodeVector(blob)
		require.NoError(t, err)
		assert.Equal(t, vec, back)
	}
}

func TestDecodeVectorInvalidLength(t *testing.T) {
	_, err := decodeVector([]byte{1, 2, 3})
	assert.Error(t, err)
}
