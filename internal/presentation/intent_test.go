package presentation_test

import (
	"testing"

	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/aretw0/infoboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	cases := map[string]presentation.Intent{
		"refresh":            presentation.RefreshScreen{},
		"Refresh_Screen":     presentation.RefreshScreen{},
		" r ":                presentation.RefreshScreen{},
		"hide_error":         presentation.HideErrorMessage{},
		"hide_error_message": presentation.HideErrorMessage{},
		"dismiss":            presentation.HideErrorMessage{},
		"d":                  presentation.HideErrorMessage{},
	}

	for name, want := range cases {
		got, err := presentation.ParseIntent(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := presentation.ParseIntent("explode")
	assert.ErrorIs(t, err, domain.ErrInvalidIntent)
}
