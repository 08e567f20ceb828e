package service_test

import (
	"testing"

	"finchpay/internal/service"
)

func TestSplitAmountKnownValues(t *testing.T) {
	cases := []struct {
		gross    int64
		yield    int64
		merchant int64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 1},
		{3, 1, 2},
		{10, 3, 7},
		{99, 30, 69},
		{100, 30, 70},
		{101, 30, 71},
		{10000, 3000, 7000},
		{3333, 1000, 2333},
		{10_000_000, 3_000_000, 7_000_000},
	}
	for _, tc := range cases {
		yield, merchant := service.SplitAmount(tc.gross)
		if yield != tc.yield || merchant != tc.merchant {
			t.Errorf("SplitAmount(%d) = (%d, %d), want (%d, %d)", tc.gross, yield, merchant, tc.yield, tc.merchant)
		}
	}
}

func TestSplitAmountSumsToGross(t *testing.T) {
	for gross := int64(0); gross <= 10_000_000; gross += 97 {
		yield, merchant := service.SplitAmount(gross)
		if yield+merchant != gross {
			t.Fatalf("split of %d does not sum back: yield=%d merchant=%d", gross, yield, merchant)
		}
		if yield < 0 || merchant < 0 {
			t.Fatalf("split of %d produced a negative share: yield=%d merchant=%d", gross, yield, merchant)
		}
	}
}
