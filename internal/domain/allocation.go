package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type AllocationEntry struct {
	Label  string
	Weight float64
}

// Allocation maps asset-class labels to weights in percentage points.
// It is a slice so that iteration order is the order the caller gave,
// including when decoded from a JSON object
type Allocation []AllocationEntry

func NewAllocation(pairs ...AllocationEntry) Allocation {
	out := Allocation{}
	for _, p := range pairs {
		out = out.Set(p.Label, p.Weight)
	}
	return out
}

// Set overwrites the weight of an existing label in place, otherwise
// appends
func (a Allocation) Set(label string, weight float64) Allocation {
	for i := range a {
		if a[i].Label == label {
			a[i].Weight = weight
			return a
		}
	}
	return append(a, AllocationEntry{Label: label, Weight: weight})
}

func (a Allocation) Total() float64 {
	total := 0.0
	for _, e := range a {
		total += e.Weight
	}
	return total
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// Canonical serializes the allocation with labels sorted, so two
// allocations with the same contents produce the same string regardless
// of input order
func (a Allocation) Canonical() string {
	entries := make([]AllocationEntry, len(a))
	copy(entries, a)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s=%s", e.Label, formatWeight(e.Weight)))
	}
	return strings.Join(parts, ",")
}

func (a Allocation) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, e := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(formatWeight(e.Weight))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Allocation) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read allocation: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("allocation must be a json object, got %v", tok)
	}

	out := Allocation{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read allocation key: %w", err)
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("allocation key must be a string, got %v", tok)
		}
		var weight float64
		if err := dec.Decode(&weight); err != nil {
			return fmt.Errorf("failed to read weight for %q: %w", label, err)
		}
		out = out.Set(label, weight)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read allocation: %w", err)
	}

	*a = out
	return nil
}
