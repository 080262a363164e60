package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(CodeUpstreamUnavailable, "failed to fetch weather", cause)

	require.True(t, IsCode(err, CodeUpstreamUnavailable))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to fetch weather: dial tcp: timeout", err.Error())
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap(CodeConfigMissing, "GEMINI_API_KEY is not set", nil))
	require.Equal(t, CodeConfigMissing, CodeOf(err))
	require.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestMessageOf(t *testing.T) {
	require.Equal(t, "Invalid JSON body", MessageOf(Wrap(CodeInvalidInput, "Invalid JSON body", errors.New("eof"))))
	require.Equal(t, "plain", MessageOf(errors.New("plain")))
	require.Equal(t, "", MessageOf(nil))
}
