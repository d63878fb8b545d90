package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniformal/unicheck/pkg/log"
)

func TestNewBuffer(t *testing.T) {
	t.Parallel()

	b := log.NewBuffer(10)
	assert.Equal(t, 10, b.Capacity())
	assert.Equal(t, 0, b.Len())

	// Non-positive capacities fall back to the default.
	assert.Equal(t, 100, log.NewBuffer(0).Capacity())
	assert.Equal(t, 100, log.NewBuffer(-5).Capacity())
}

func TestBuffer_Write(t *testing.T) {
	t.Parallel()

	b := log.NewBuffer(3)

	n, err := b.Write([]byte("entry1\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 1, b.Len())

	// Empty writes are ignored.
	n, err = b.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_DropsOldest(t *testing.T) {
	t.Parallel()

	b := log.NewBuffer(2)

	for _, entry := range []string{"one\n", "two\n", "three\n"} {
		_, err := b.Write([]byte(entry))
		require.NoError(t, err)
	}

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.Dropped())

	out := &bytes.Buffer{}
	_, err := b.WriteTo(out)
	require.NoError(t, err)

	assert.Equal(t, "two\nthree\n", out.String())
}

func TestBuffer_WriteToClears(t *testing.T) {
	t.Parallel()

	b := log.NewBuffer(5)
	_, err := b.Write([]byte("hello\n"))
	require.NoError(t, err)

	out := &strings.Builder{}
	n, err := b.WriteTo(out)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, 0, b.Len())

	// Second flush writes nothing.
	n, err = b.WriteTo(out)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
