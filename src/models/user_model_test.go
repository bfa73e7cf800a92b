package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCarrierID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MC123456", "123456"},
		{"mc123456", "123456"},
		{"DOT98765", "98765"},
		{"MC-123-456", "123456"},
		{"MC 123 456", "123456"},
		{"", ""},
		{"MC", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCarrierID(tt.in), "input %q", tt.in)
	}
}

func TestPairKeyIsUnordered(t *testing.T) {
	assert.Equal(t, PairKey(1, 2), PairKey(2, 1))
	assert.Equal(t, "1:2", PairKey(2, 1))
	assert.Equal(t, "7:7", PairKey(7, 7))
	assert.NotEqual(t, PairKey(1, 2), PairKey(1, 3))
	// Canonical form compares numerically, not lexically
	assert.Equal(t, "2:10", PairKey(10, 2))
}

func TestConnectionPeerID(t *testing.T) {
	conn := Connection{SenderID: 4, RecipientID: 9}

	assert.Equal(t, uint(9), conn.PeerID(4))
	assert.Equal(t, uint(4), conn.PeerID(9))
	assert.True(t, conn.Involves(4))
	assert.True(t, conn.Involves(9))
	assert.False(t, conn.Involves(5))
}
