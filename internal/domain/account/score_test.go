package account

import "testing"

func TestDeltaScorePolicy(t *testing.T) {
	p := DeltaScorePolicy{RepayReward: 10, ClosePenalty: 50}

	if got := p.OnRepaid(750); got != 760 {
		t.Fatalf("OnRepaid = %d, want 760", got)
	}
	if got := p.OnLiquidated(750); got != 700 {
		t.Fatalf("OnLiquidated = %d, want 700", got)
	}
	if got := p.OnDefaulted(30); got != 0 {
		t.Fatalf("OnDefaulted floored = %d, want 0", got)
	}
}

func TestProfileAddRemoveLoan(t *testing.T) {
	p := Profile{Principal: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", ActiveLoans: []uint64{}}

	p.AddLoan(1, 50_000_000)
	p.AddLoan(2, 25_000_000)
	if p.TotalCollateralSats != 75_000_000 {
		t.Fatalf("TotalCollateralSats = %d", p.TotalCollateralSats)
	}
	if len(p.ActiveLoans) != 2 {
		t.Fatalf("ActiveLoans = %v", p.ActiveLoans)
	}

	p.RemoveLoan(1, 50_000_000)
	if p.TotalCollateralSats != 25_000_000 {
		t.Fatalf("TotalCollateralSats after remove = %d", p.TotalCollateralSats)
	}
	if len(p.ActiveLoans) != 1 || p.ActiveLoans[0] != 2 {
		t.Fatalf("ActiveLoans after remove = %v", p.ActiveLoans)
	}

	// removing an id that is not present leaves state alone
	p.RemoveLoan(99, 10)
	if p.TotalCollateralSats != 25_000_000 || len(p.ActiveLoans) != 1 {
		t.Fatalf("unexpected state after spurious remove: %+v", p)
	}
}
