package account

// ScorePolicy adjusts a credit score after a lifecycle outcome. The exact
// magnitudes are a policy knob, not a ledger rule, so callers receive it as
// an interface.
type ScorePolicy interface {
	OnRepaid(score int) int
	OnLiquidated(score int) int
	OnDefaulted(score int) int
}

// DeltaScorePolicy is the default policy: a flat reward on repayment and a
// flat penalty on forced closure, floored at zero.
type DeltaScorePolicy struct {
	RepayReward  int
	ClosePenalty int
}

func (p DeltaScorePolicy) OnRepaid(score int) int { return score + p.RepayReward }

func (p DeltaScorePolicy) OnLiquidated(score int) int { return clampScore(score - p.ClosePenalty) }

func (p DeltaScorePolicy) OnDefaulted(score int) int { return clampScore(score - p.ClosePenalty) }

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	return s
}
