package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfWrappedChain(t *testing.T) {
	base := Wrap(CodeNotFound, "share result not found", nil)
	wrapped := fmt.Errorf("load: %w", base)

	require.True(t, IsCode(wrapped, CodeNotFound))
	require.Equal(t, "share result not found", MessageOf(wrapped))
	require.Empty(t, CodeOf(fmt.Errorf("plain")))
}

func TestAppErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(CodeStorage, "failed to store image", fmt.Errorf("bucket missing"))
	require.Equal(t, "failed to store image: bucket missing", err.Error())
}
