package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	typ, err := ParseType("page")
	require.NoError(t, err)
	assert.Equal(t, TypePage, typ)

	_, err = ParseType("banner")
	assert.Error(t, err)
}

func TestNewContent(t *testing.T) {
	c, err := NewContent(uuid.New(), "about-us", TypePage)
	require.NoError(t, err)
	assert.True(t, c.Visible)

	_, err = NewContent(uuid.New(), "", TypeBox)
	assert.Error(t, err)

	_, err = NewContent(uuid.New(), "x", "POPUP")
	assert.Error(t, err)
}
