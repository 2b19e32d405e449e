// Package risk holds the pure loan-risk arithmetic: collateral valuation,
// loan-to-value ratios, borrowing caps, and simple-interest accrual. Nothing
// here reads or writes state; callers pass the price in.
package risk

import (
	"errors"
	"time"
)

const (
	// MaxLTVBps caps the ratio of borrowed cents to collateral value at
	// admission, in basis points. Kept integral so the borrowing cap never
	// drifts a cent through float truncation.
	MaxLTVBps      = 7_000
	bpsDenominator = 10_000

	// MaxLTV is the same cap as a ratio, for comparisons.
	MaxLTV = float64(MaxLTVBps) / bpsDenominator
	// DefaultInterestRate is the annualized rate fixed on every new loan.
	DefaultInterestRate = 0.08
	// DefaultLiquidationThreshold is the live-LTV level above which an active
	// loan is force-closed. Policy knob, overridable via config.
	DefaultLiquidationThreshold = 0.85

	SatsPerBTC = 100_000_000

	secondsPerYear = 365 * 24 * 60 * 60
)

// ErrUndefinedRatio signals a division by zero in the LTV computation
// (worthless or absent collateral). Callers must treat it as maximal risk.
var ErrUndefinedRatio = errors.New("ltv undefined: collateral has no market value")

// CollateralValueCents converts satoshis to USD cents at the given price,
// rounding down.
func CollateralValueCents(sats uint64, priceUSD float64) uint64 {
	if priceUSD <= 0 {
		return 0
	}
	usd := float64(sats) / SatsPerBTC * priceUSD
	return uint64(usd * 100)
}

// MaxLoan returns the largest principal, in cents, admissible against the
// given collateral at the given price. Monotonically non-decreasing in both
// arguments.
func MaxLoan(sats uint64, priceUSD float64) uint64 {
	return CollateralValueCents(sats, priceUSD) * MaxLTVBps / bpsDenominator
}

// LTV computes loanCents / collateral value. A zero-valued collateral yields
// ErrUndefinedRatio rather than +Inf.
func LTV(sats, loanCents uint64, priceUSD float64) (float64, error) {
	value := CollateralValueCents(sats, priceUSD)
	if value == 0 {
		return 0, ErrUndefinedRatio
	}
	return float64(loanCents) / float64(value), nil
}

// AccruedTotal returns principal plus simple (non-compounding) interest for
// the time elapsed since createdAt, in cents, rounding the interest down.
// Elapsed time is clamped at zero so a skewed clock never discounts principal.
func AccruedTotal(principalCents uint64, annualRate float64, createdAt, now time.Time) uint64 {
	elapsed := now.Sub(createdAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	interest := float64(principalCents) * annualRate * (elapsed / secondsPerYear)
	return principalCents + uint64(interest)
}
