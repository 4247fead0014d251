package bump

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifierFormat(t *testing.T) {
	v := mustParse(t, "1.2.3-ceti-alpha.4+sha.5114f85.1")
	require.Equal(t, "ceti-alpha.4", PrereleaseField.Format(v))
	require.Equal(t, "sha.5114f85.1", BuildField.Format(v))

	bare := mustParse(t, "1.2.3")
	require.Equal(t, "", PrereleaseField.Format(bare))
	require.Equal(t, "", BuildField.Format(bare))
}

func TestIdentifierApply(t *testing.T) {
	t.Run("Pre-release", func(t *testing.T) {
		v := mustParse(t, "1.2.3")
		require.NoError(t, PrereleaseField.Apply(&v, "rc.2"))
		require.Equal(t, "1.2.3-rc.2", v.String())
		require.True(t, v.Pre[1].IsNum)

		require.NoError(t, PrereleaseField.Apply(&v, ""))
		require.Equal(t, "1.2.3", v.String())
	})

	t.Run("Build", func(t *testing.T) {
		v := mustParse(t, "1.2.3-rc.2")
		require.NoError(t, BuildField.Apply(&v, "007.x-y"))
		require.Equal(t, "1.2.3-rc.2+007.x-y", v.String())

		require.NoError(t, BuildField.Apply(&v, ""))
		require.Equal(t, "1.2.3-rc.2", v.String())
	})

	invalid := []struct {
		id    Identifier
		value string
	}{
		{PrereleaseField, "alpha..1"},
		{PrereleaseField, "alpha.01"},
		{PrereleaseField, "al_pha"},
		{BuildField, "sha..1"},
		{BuildField, "sha+1"},
	}

	for _, test := range invalid {
		t.Run(test.id.Name()+" "+test.value, func(t *testing.T) {
			v := mustParse(t, "1.2.3")
			err := test.id.Apply(&v, test.value)
			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			require.Equal(t, test.value, formatErr.Value)
			require.Equal(t, "1.2.3", v.String(), "version must not change on error")
		})
	}
}
