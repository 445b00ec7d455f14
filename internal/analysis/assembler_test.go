package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunara-health/cyclesense/internal/model"
)

func TestAssemble(t *testing.T) {
	window := windowOf(
		symptomDay("cramping"),
		symptomDay("cramping"),
		symptomDay(),
		symptomDay("migraines"),
		symptomDay(),
	)
	result := FallbackClassify(window)
	stats := Summarize(window)

	report, err := Assemble(window, result, stats)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, result, report.Result)
	assert.Equal(t, stats, report.Stats)
}

func TestAssemble_ShortWindow(t *testing.T) {
	window := windowOf(
		symptomDay("cramping"),
		symptomDay("cramping"),
		symptomDay("cramping"),
		symptomDay("cramping"),
	)

	report, err := Assemble(window, FallbackClassify(window), Summarize(window))
	require.Error(t, err)
	assert.Nil(t, report, "short windows must never yield a partial report")

	var insufficient *model.InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 4, insufficient.Have)
	assert.Equal(t, model.MinimumForAnalysis, insufficient.Need)
}
