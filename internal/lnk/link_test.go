package lnk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/lnkparse/internal/lnk"
)

func TestLink_Accessors(t *testing.T) {
	name, args := "Notepad", ""
	l := &lnk.Link{
		StringData: &lnk.StringData{NameString: &name, CommandLineArguments: &args},
	}

	got, err := l.Description()
	require.NoError(t, err)
	assert.Equal(t, "Notepad", got)

	got, err = l.Arguments()
	require.NoError(t, err)
	assert.Equal(t, "", got, "present but empty")

	for _, get := range []func() (string, error){l.RelativePath, l.WorkingDir, l.IconLocation} {
		_, err := get()
		assert.ErrorIs(t, err, lnk.ErrMissingField)
	}

	_, err = l.TargetPath()
	assert.ErrorIs(t, err, lnk.ErrMissingField)

	empty := &lnk.Link{}
	_, err = empty.Description()
	assert.ErrorIs(t, err, lnk.ErrMissingField)
	assert.Contains(t, err.Error(), "name string")
}
