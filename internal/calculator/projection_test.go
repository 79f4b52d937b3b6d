package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectionTable(t *testing.T) {
	t.Run("one year of sip", func(t *testing.T) {
		rows := ProjectionTable(0, 10000, 0.12, 1)
		require.Len(t, rows, 1)
		require.Equal(t, 1, rows[0].Year)
		require.Equal(t, 120000.0, rows[0].Invested)
		require.Greater(t, rows[0].Returns, 0.0)
		require.InDelta(t, 128093.28, rows[0].TotalValue, 10)
	})

	t.Run("lump sum only", func(t *testing.T) {
		rows := ProjectionTable(100000, 0, 0.12, 3)
		require.Len(t, rows, 3)
		for i, row := range rows {
			require.Equal(t, i+1, row.Year)
			require.Equal(t, 100000.0, row.Invested)
		}
		require.Less(t, rows[0].TotalValue, rows[1].TotalValue)
		require.Less(t, rows[1].TotalValue, rows[2].TotalValue)
	})

	t.Run("zero rate earns nothing", func(t *testing.T) {
		rows := ProjectionTable(1000, 100, 0, 2)
		require.Equal(t, []ProjectionRow{
			{Year: 1, Invested: 2200, Returns: 0, TotalValue: 2200},
			{Year: 2, Invested: 3400, Returns: 0, TotalValue: 3400},
		}, rows)
	})

	t.Run("no years", func(t *testing.T) {
		require.Empty(t, ProjectionTable(1000, 100, 0.1, 0))
	})
}
