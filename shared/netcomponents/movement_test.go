package netcomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupersedes(t *testing.T) {
	stored := NetMovementData{Sequence: 5}

	assert.True(t, NetMovementData{Sequence: 6}.Supersedes(stored))
	assert.False(t, NetMovementData{Sequence: 5}.Supersedes(stored), "equal sequence is stale")
	assert.False(t, NetMovementData{Sequence: 4}.Supersedes(stored))
	assert.True(t, NetMovementData{Sequence: 1}.Supersedes(NetMovementData{}))
}

func TestEncodeDecodeMovement(t *testing.T) {
	in := NetMovementData{X: 120.5, Y: -33, Z: 250, Yaw: 45, Sequence: 9}

	b, err := EncodeMovement(in)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	out, err := DecodeMovement(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeMovement_Garbage(t *testing.T) {
	_, err := DecodeMovement(nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	b, err := EncodeMovement(NetMovementData{X: 1, Y: 2, Z: 3, Yaw: 4, Sequence: 5})
	require.NoError(t, err)
	_, err = DecodeMovement(b[:len(b)/2])
	assert.Error(t, err, "truncated payload")
}
