package domain

import "time"

type PricePoint struct {
	Symbol   string
	Date     time.Time
	Close    float64
	AdjClose float64
}

// Price prefers the adjusted close when the source reported one
func (p PricePoint) Price() float64 {
	if p.AdjClose > 0 {
		return p.AdjClose
	}
	return p.Close
}
