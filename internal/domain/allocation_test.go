package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocation_UnmarshalJSON(t *testing.T) {
	t.Run("preserves key order", func(t *testing.T) {
		a := Allocation{}
		err := json.Unmarshal([]byte(`{"Gold": 10, "Equity - Large Cap": 60, "Debt": 30}`), &a)
		require.NoError(t, err)

		require.Equal(t, Allocation{{"Gold", 10}, {"Equity - Large Cap", 60}, {"Debt", 30}}, a)
		require.Equal(t, 100.0, a.Total())
	})

	t.Run("duplicate key keeps first position and last weight", func(t *testing.T) {
		a := Allocation{}
		err := json.Unmarshal([]byte(`{"Debt": 30, "Gold": 10, "Debt": 40}`), &a)
		require.NoError(t, err)

		require.Equal(t, Allocation{{"Debt", 40}, {"Gold", 10}}, a)
	})

	t.Run("rejects arrays", func(t *testing.T) {
		a := Allocation{}
		err := json.Unmarshal([]byte(`[1, 2]`), &a)
		require.Error(t, err)
	})

	t.Run("rejects non-numeric weights", func(t *testing.T) {
		a := Allocation{}
		err := json.Unmarshal([]byte(`{"Debt": "thirty"}`), &a)
		require.Error(t, err)
	})

	t.Run("inside a struct", func(t *testing.T) {
		in := struct {
			Allocation Allocation `json:"allocation"`
		}{}
		err := json.Unmarshal([]byte(`{"allocation": {"Debt": 70.5, "Gold": 29.5}}`), &in)
		require.NoError(t, err)
		require.Equal(t, Allocation{{"Debt", 70.5}, {"Gold", 29.5}}, in.Allocation)
	})
}

func TestAllocation_MarshalJSON(t *testing.T) {
	a := NewAllocation(
		AllocationEntry{"Equity - Large Cap", 60},
		AllocationEntry{"Debt", 30},
		AllocationEntry{"Gold", 10},
	)
	bytes, err := json.Marshal(a)
	require.NoError(t, err)
	require.Equal(t, `{"Equity - Large Cap":60,"Debt":30,"Gold":10}`, string(bytes))
}

func TestAllocation_Canonical(t *testing.T) {
	t.Run("independent of order", func(t *testing.T) {
		a := Allocation{{"Gold", 10}, {"Debt", 30}, {"Equity - Large Cap", 60}}
		b := Allocation{{"Equity - Large Cap", 60}, {"Gold", 10}, {"Debt", 30}}

		require.Equal(t, a.Canonical(), b.Canonical())
		require.Equal(t, "Debt=30,Equity - Large Cap=60,Gold=10", a.Canonical())
	})

	t.Run("does not reorder the receiver", func(t *testing.T) {
		a := Allocation{{"Gold", 10}, {"Debt", 30}}
		a.Canonical()
		require.Equal(t, "Gold", a[0].Label)
	})
}
