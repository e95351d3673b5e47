package presentation_test

import (
	"testing"

	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_InitialLoadCarriesEverything(t *testing.T) {
	d := presentation.Diff(nil, presentation.UIState{})
	require.NotNil(t, d)

	for _, f := range []string{
		presentation.FieldIsLoading, presentation.FieldHeader,
		presentation.FieldItems, presentation.FieldErrorMessage,
	} {
		assert.True(t, d.Has(f), f)
	}
	assert.NotNil(t, *d.Items, "items are never null")
}

func TestDiff_OnlyChangedFields(t *testing.T) {
	before := loaded()
	after := presentation.Reduce(before, presentation.UpdateErrorMessageState{ErrorMessage: "network down"})

	d := presentation.Diff(&before, after)
	require.NotNil(t, d)

	assert.False(t, d.Has(presentation.FieldIsLoading))
	assert.False(t, d.Has(presentation.FieldHeader))
	assert.True(t, d.Has(presentation.FieldItems))
	assert.Empty(t, *d.Items)
	assert.Equal(t, "network down", *d.ErrorMessage)
	assert.False(t, d.Has("unknown"))
}

func TestDiff_NoChange(t *testing.T) {
	s := loaded()
	assert.Nil(t, presentation.Diff(&s, loaded()))
}

func TestDiff_HiddenErrorIsReported(t *testing.T) {
	before := presentation.UIState{ErrorMessage: "x"}
	d := presentation.Diff(&before, presentation.UIState{})

	require.NotNil(t, d)
	require.NotNil(t, d.ErrorMessage)
	assert.Empty(t, *d.ErrorMessage)
}
