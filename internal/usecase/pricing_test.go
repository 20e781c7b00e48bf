package usecase

import (
	"testing"

	"studio-booking/internal/data/entity"
)

func dtptr(dt entity.DiscountType) *entity.DiscountType { return &dt }

func TestComputeTotalsNoDiscount(t *testing.T) {
	t.Parallel()

	subtotal, total := ComputeTotals([]TotalLine{
		{Amount: 120, Qty: 1},
		{Amount: 15.5, Qty: 2},
	}, nil, 0)

	if subtotal != 151 {
		t.Errorf("subtotal = %v, want 151", subtotal)
	}
	if total != subtotal {
		t.Errorf("total = %v, want subtotal", total)
	}
}

func TestComputeTotalsZeroQtyCountsAsOne(t *testing.T) {
	t.Parallel()

	subtotal, _ := ComputeTotals([]TotalLine{{Amount: 50, Qty: 0}}, nil, 0)
	if subtotal != 50 {
		t.Errorf("subtotal = %v, want 50", subtotal)
	}
}

func TestComputeTotalsPctDiscount(t *testing.T) {
	t.Parallel()

	subtotal, total := ComputeTotals([]TotalLine{{Amount: 200, Qty: 1}}, dtptr(entity.DiscountTypePct), 25)
	if subtotal != 200 || total != 150 {
		t.Errorf("got %v/%v, want 200/150", subtotal, total)
	}
}

func TestComputeTotalsValueDiscount(t *testing.T) {
	t.Parallel()

	_, total := ComputeTotals([]TotalLine{{Amount: 200, Qty: 1}}, dtptr(entity.DiscountTypeValue), 30)
	if total != 170 {
		t.Errorf("total = %v, want 170", total)
	}
}

func TestComputeTotalsDiscountClampedAtSubtotal(t *testing.T) {
	t.Parallel()

	_, total := ComputeTotals([]TotalLine{{Amount: 100, Qty: 1}}, dtptr(entity.DiscountTypeValue), 250)
	if total != 0 {
		t.Errorf("total = %v, want 0 (discount clamped)", total)
	}
}

func TestComputeTotalsNegativeDiscountIgnored(t *testing.T) {
	t.Parallel()

	_, total := ComputeTotals([]TotalLine{{Amount: 100, Qty: 1}}, dtptr(entity.DiscountTypeValue), -50)
	if total != 100 {
		t.Errorf("total = %v, want 100 (negative discount ignored)", total)
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	t.Parallel()

	lines := []TotalLine{{Amount: 99.9, Qty: 3}, {Amount: 0.1, Qty: 7}}
	s1, t1 := ComputeTotals(lines, dtptr(entity.DiscountTypePct), 10)
	for i := 0; i < 100; i++ {
		s2, t2 := ComputeTotals(lines, dtptr(entity.DiscountTypePct), 10)
		if s1 != s2 || t1 != t2 {
			t.Fatalf("run %d diverged: %v/%v vs %v/%v", i, s1, t1, s2, t2)
		}
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{3.14159, 3.14},
		{2.718, 2.72},
		{10.006, 10.01},
		{10.004, 10.00},
		{5, 5},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAlmostGTE(t *testing.T) {
	t.Parallel()

	// Sub-cent float noise counts as covered, a full cent short does not.
	if !almostGTE(149.995, 150.0) {
		t.Error("149.995 should cover 150.00")
	}
	if almostGTE(149.99, 150.0) {
		t.Error("149.99 must not cover 150.00")
	}
	if !almostGTE(150.0, 150.0) {
		t.Error("exact amount should cover")
	}
}
