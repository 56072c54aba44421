package domsift_test

import (
	"fmt"
	"testing"

	"github.com/domsift/domsift"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := domsift.Errorf(domsift.ENOTFOUND, "crawl %q not found", "test")

	assert.Equal(t, domsift.ENOTFOUND, domsift.ErrorCode(err))
	assert.Equal(t, "crawl \"test\" not found", domsift.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, domsift.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domsift.EINTERNAL, domsift.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetching page: %w", domsift.Errorf(domsift.EINVALID, "bad URL"))

	assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
	assert.Equal(t, "bad URL", domsift.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, domsift.ErrorMessage(nil))
}
