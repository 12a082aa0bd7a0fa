package entity

// NudgeKind selects which reminder template a nudge email uses.
type NudgeKind string

const (
	NudgeKindIncompleteProfile NudgeKind = "incomplete_profile"
	NudgeKindMissingPayout     NudgeKind = "missing_payout"
	NudgeKindDormantAccount    NudgeKind = "dormant_account"
)

// Valid reports whether the kind maps to a known template.
func (k NudgeKind) Valid() bool {
	switch k {
	case NudgeKindIncompleteProfile, NudgeKindMissingPayout, NudgeKindDormantAccount:
		return true
	default:
		return false
	}
}
