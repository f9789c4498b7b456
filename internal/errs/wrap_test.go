package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stafferly/stafferly/internal/errs"
)

var errBase = errors.New("base error")

func TestWrap(t *testing.T) {
	t.Run("Should wrap both errors", func(t *testing.T) {
		ext := errors.New("extended")
		err := errs.Wrap(errBase, ext)

		assert.ErrorIs(t, err, errBase)
		assert.ErrorIs(t, err, ext)
		assert.Equal(t, "base error: extended", err.Error())
	})

	t.Run("Should return base on nil extension", func(t *testing.T) {
		err := errs.Wrap(errBase, nil)
		assert.Equal(t, errBase, err)
	})
}

func TestWrapf(t *testing.T) {
	err := errs.Wrapf(errBase, "detail")

	assert.ErrorIs(t, err, errBase)
	assert.Equal(t, "base error: detail", err.Error())
}
