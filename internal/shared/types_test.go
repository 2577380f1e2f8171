package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimit(t *testing.T) {
	items := []struct {
		name  string
		value int
		ok    bool
	}{
		{"zero", 0, true},
		{"positive", 20, true},
		{"large", 10000, true},
		{"negative", -1, false},
		{"very negative", -500, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			l, err := NewLimit(item.value)
			if !item.ok {
				assert.ErrorIs(t, err, ErrNegativeLimit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, item.value, l.Value())
		})
	}
}

func TestNewOffset(t *testing.T) {
	items := []struct {
		name  string
		value int
		ok    bool
	}{
		{"zero", 0, true},
		{"positive", 40, true},
		{"negative", -1, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			o, err := NewOffset(item.value)
			if !item.ok {
				assert.ErrorIs(t, err, ErrNegativeOffset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, item.value, o.Value())
		})
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, 20, DefaultLimit.Value())
	assert.Equal(t, 0, DefaultOffset.Value())
}
