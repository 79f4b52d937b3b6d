package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFutureValue(t *testing.T) {
	t.Run("compounds annually", func(t *testing.T) {
		fv, err := FutureValue(100, 0.1, 2)
		require.NoError(t, err)
		require.InDelta(t, 121.0, fv, 1e-9)
	})
	t.Run("zero years is the present value", func(t *testing.T) {
		fv, err := FutureValue(100, 0.1, 0)
		require.NoError(t, err)
		require.Equal(t, 100.0, fv)
	})
	t.Run("negative years", func(t *testing.T) {
		_, err := FutureValue(100, 0.1, -1)
		require.Error(t, err)
	})
}

func TestSipFutureValue(t *testing.T) {
	t.Run("standard sip", func(t *testing.T) {
		fv := SipFutureValue(10000, 0.12, 10)
		require.Greater(t, fv, 1200000.0)
	})
	t.Run("one year matches the annuity due formula", func(t *testing.T) {
		require.InDelta(t, 128093.28, SipFutureValue(10000, 0.12, 1), 0.01)
	})
	t.Run("zero rate is linear", func(t *testing.T) {
		require.Equal(t, 24000.0, SipFutureValue(1000, 0, 2))
	})
	t.Run("non-positive years", func(t *testing.T) {
		require.Equal(t, 0.0, SipFutureValue(1000, 0.12, 0))
		require.Equal(t, 0.0, SipFutureValue(1000, 0.12, -3))
	})
}

func TestRequiredSip(t *testing.T) {
	t.Run("inverts SipFutureValue", func(t *testing.T) {
		fv := SipFutureValue(10000, 0.12, 10)
		require.InDelta(t, 10000.0, RequiredSip(fv, 0.12, 10), 1e-6)
	})
	t.Run("zero rate", func(t *testing.T) {
		require.Equal(t, 1000.0, RequiredSip(24000, 0, 2))
	})
	t.Run("non-positive years", func(t *testing.T) {
		require.Equal(t, 0.0, RequiredSip(24000, 0.12, 0))
	})
}
