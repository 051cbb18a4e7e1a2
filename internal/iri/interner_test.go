package iri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternIdentity(t *testing.T) {
	in := New(DefaultConfig())
	a, err := in.Intern("http://example.org/onto#Dog")
	require.NoError(t, err)
	b, err := in.Intern("http://example.org/onto#Dog")
	require.NoError(t, err)
	assert.Same(t, a, b, "interning the same text twice must return the same pointer")
}

func TestNamespaceSplit(t *testing.T) {
	in := New(DefaultConfig())
	h, err := in.Intern("http://example.org/onto#Dog")
	require.NoError(t, err)
	ns, ok := h.Namespace()
	require.True(t, ok)
	assert.Equal(t, "http://example.org/onto#", ns)
	assert.Equal(t, "Dog", h.LocalName())
}

func TestStrictModeRejectsMalformed(t *testing.T) {
	in := New(Config{MaxPerShard: 64, StrictRFC3987: true})
	_, err := in.Intern("not an iri")
	assert.ErrorIs(t, err, ErrInvalidIri)

	_, err = in.Intern("http://example.org/onto#Dog")
	assert.NoError(t, err)
}

func TestReleaseDropsRefcount(t *testing.T) {
	in := New(Config{MaxPerShard: 64})
	h, err := in.Intern("http://example.org/onto#Cat")
	require.NoError(t, err)
	assert.Equal(t, 1, in.Len())
	in.Release(h)
	assert.Equal(t, 0, in.Len())
}

func TestResetInterner(t *testing.T) {
	_, err := Intern("http://example.org/onto#Reset")
	require.NoError(t, err)
	assert.Greater(t, Default().Len(), 0)
	ResetInterner()
	assert.Equal(t, 0, Default().Len())
}
