package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString(35)
	require.NoError(t, err)
	s2, err := GenerateRandomString(35)
	require.NoError(t, err)

	assert.NotEmpty(t, s1)
	assert.NotEmpty(t, s2)
	assert.NotEqual(t, s1, s2)
}

func TestBytesToString(t *testing.T) {
	assert.Equal(t, "liftstats", BytesToString([]byte("liftstats")))
	assert.Equal(t, "", BytesToString(nil))
}

func TestRoundTo2Decimals(t *testing.T) {
	assert.Equal(t, 33.33, RoundTo2Decimals(2000.0/60.0))
	assert.Equal(t, 0.0, RoundTo2Decimals(0))
	assert.Equal(t, 12.5, RoundTo2Decimals(12.5))
	assert.Equal(t, 12.57, RoundTo2Decimals(12.566))
}
