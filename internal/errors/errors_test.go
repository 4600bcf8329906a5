package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAnalysisError_Error tests message formatting with and without an
// underlying error
func TestAnalysisError_Error(t *testing.T) {
	plain := New(KindInvalidInput, "returns", "Estimate", "nil series")
	assert.Equal(t, "[INVALID_INPUT:returns] Estimate: nil series", plain.Error())

	wrapped := Wrap(stderrors.New("disk full"), KindData, "reporting", "write_csv", "failed to write")
	assert.Contains(t, wrapped.Error(), "disk full")
	assert.Contains(t, wrapped.Error(), "DATA")
}

// TestKindOf tests kind extraction through wrapping layers
func TestKindOf(t *testing.T) {
	err := NewNegativeVarianceError("simulation", "evaluateRange", -0.001)
	assert.Equal(t, KindNegativeVariance, KindOf(err))

	outer := fmt.Errorf("analysis failed: %w", err)
	assert.Equal(t, KindNegativeVariance, KindOf(outer))
	assert.True(t, IsKind(outer, KindNegativeVariance))
	assert.False(t, IsKind(outer, KindDivisionByZero))

	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
}

// TestWrap_Nil tests that wrapping nil stays nil
func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindData, "reporting", "write_csv", "failed"))
}

// TestUnwrap tests errors.Is through the wrapper
func TestUnwrap(t *testing.T) {
	inner := stderrors.New("root cause")
	wrapped := Wrap(inner, KindData, "data", "LoadPrices", "fetch failed")
	assert.True(t, stderrors.Is(wrapped, inner))
}
