package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine())
	assert.NoError(t, Combine(nil, nil))

	err := Combine(nil, errors.New("first"), errors.New("second"))
	assert.Error(t, err)
	assert.Equal(t, "first, second", err.Error())
}

func TestRecoverAbsorbsPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("")
		panic("boom")
	})
}
