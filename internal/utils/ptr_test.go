package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeref(t *testing.T) {
	assert.Equal(t, 0, Deref[int](nil, 0))
	assert.Equal(t, 3, Deref(Ptr(3), 0))
	assert.Equal(t, "n/a", Deref(nil, "n/a"))
}

func TestNilIfZero(t *testing.T) {
	assert.Nil(t, NilIfZero(uuid.Nil))

	id := uuid.New()
	got := NilIfZero(id)
	if assert.NotNil(t, got) {
		assert.Equal(t, id, *got)
	}
}

func TestStringOrNil(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"", nil},
		{"   \t", nil},
		{" 6-4 6-2 ", Ptr("6-4 6-2")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StringOrNil(tt.in), "input %q", tt.in)
	}
}
