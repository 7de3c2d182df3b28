package validator

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want string
	}{
		{"250", true, "250"},
		{" 250.50 ", true, "250.5"},
		{"0.01", true, "0.01"},
		{"1.000", true, "1"},
		{"9999999999.99", true, "9999999999.99"},
		{"0", false, ""},
		{"-1", false, ""},
		{"ten", false, ""},
		{"0.001", false, ""},
		{"0.004", false, ""},
		{"12.345", false, ""},
		{"10000000000", false, ""},
		{"123456789012.50", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAmountBindingRule(t *testing.T) {
	RegisterCustomValidations()

	type request struct {
		Amount string `json:"amount" binding:"required,decimal_gt0"`
	}

	if err := binding.Validator.ValidateStruct(&request{Amount: "19.99"}); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	err := binding.Validator.ValidateStruct(&request{Amount: "0.004"})
	if err == nil {
		t.Fatal("expected sub-cent amount to fail")
	}
	if msg := FormatValidationError(err); !strings.HasPrefix(msg, "Donation amount must be a positive amount") {
		t.Errorf("unexpected message %q", msg)
	}
}
