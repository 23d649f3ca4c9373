package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, inputs ...string) {
	t.Helper()
	origRead, origTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTerm })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) {
		if len(inputs) == 0 {
			return nil, errors.New("no more input")
		}
		next := inputs[0]
		inputs = inputs[1:]
		return []byte(next), nil
	}
}

func stubPipe(t *testing.T, input string) {
	t.Helper()
	origTerm, origStdin := isTerminal, stdin
	t.Cleanup(func() { isTerminal, stdin = origTerm, origStdin })

	isTerminal = func(int) bool { return false }
	stdin = bufio.NewReader(strings.NewReader(input))
}

func TestPasswordFromTerminal(t *testing.T) {
	stubTerminal(t, "s3cret")
	var out bytes.Buffer

	pw, err := Password(&out, "Password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Password: \n", out.String())
}

func TestPasswordFromPipe(t *testing.T) {
	t.Run("trims newline", func(t *testing.T) {
		stubPipe(t, "piped\r\n")
		pw, err := Password(&bytes.Buffer{}, "Password")
		require.NoError(t, err)
		assert.Equal(t, "piped", pw)
	})

	t.Run("accepts missing newline", func(t *testing.T) {
		stubPipe(t, "last-line")
		pw, err := Password(&bytes.Buffer{}, "Password")
		require.NoError(t, err)
		assert.Equal(t, "last-line", pw)
	})

	t.Run("empty input", func(t *testing.T) {
		stubPipe(t, "")
		_, err := Password(&bytes.Buffer{}, "Password")
		assert.Error(t, err)
	})
}

func TestPasswordRejectsEmpty(t *testing.T) {
	stubTerminal(t, "")
	_, err := Password(&bytes.Buffer{}, "Password")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestConfirmedPasswordFromPipe(t *testing.T) {
	stubPipe(t, "twice\ntwice\n")
	pw, err := ConfirmedPassword(&bytes.Buffer{}, "Password")
	require.NoError(t, err)
	assert.Equal(t, "twice", pw)
}

func TestConfirmedPassword(t *testing.T) {
	t.Run("matching", func(t *testing.T) {
		stubTerminal(t, "same", "same")
		var out bytes.Buffer
		pw, err := ConfirmedPassword(&out, "Admin password")
		require.NoError(t, err)
		assert.Equal(t, "same", pw)
		assert.Contains(t, out.String(), "Confirm admin password: ")
	})

	t.Run("mismatch", func(t *testing.T) {
		stubTerminal(t, "one", "two")
		_, err := ConfirmedPassword(&bytes.Buffer{}, "Password")
		assert.ErrorContains(t, err, "do not match")
	})
}
