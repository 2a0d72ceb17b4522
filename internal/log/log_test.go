package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSpinner(t *testing.T) {
	var ran bool

	err := WithSpinner("working...", func() error {
		ran = true

		return nil
	})

	assert.NoError(t, err)
	assert.True(t, ran)
}

func TestWithSpinnerPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")

	err := WithSpinner("working...", func() error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
}
