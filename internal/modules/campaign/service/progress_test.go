package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name   string
		raised string
		goal   string
		want   int
	}{
		{"nothing raised", "0", "1000", 0},
		{"rounds down", "33333", "100000", 33},
		{"rounds half up", "33500", "100000", 34},
		{"half way", "500", "1000", 50},
		{"exactly funded", "1000", "1000", 100},
		{"overfunded is capped", "2500", "1000", 100},
		{"just under goal rounds to 100", "999.5", "1000", 100},
		{"fractional goal", "1", "3", 33},
		{"zero goal", "100", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercentage(decimal.RequireFromString(tt.raised), decimal.RequireFromString(tt.goal))
			if got != tt.want {
				t.Errorf("ProgressPercentage(%s, %s) = %d, want %d", tt.raised, tt.goal, got, tt.want)
			}
		})
	}
}
