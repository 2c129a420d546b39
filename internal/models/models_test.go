package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{name: "twenty percent", price: 100, discount: 20, want: 80},
		{name: "no discount", price: 59.5, discount: 0, want: 59.5},
		{name: "full discount", price: 40, discount: 100, want: 0},
		{name: "fractional", price: 19.99, discount: 10, want: 17.991},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalPrice(tt.price, tt.discount), 1e-9)
		})
	}
}

func TestProduct_RecomputeTotal(t *testing.T) {
	p := Product{Price: 250, Discount: 10, TotalPrice: 1}
	p.RecomputeTotal()
	assert.InDelta(t, 225, p.TotalPrice, 1e-9)
}
