package services

// TierNotEligible is returned when no tier range matches the amount. It is a
// valid classification, not an error; such submissions can still be created
// and reviewed.
const TierNotEligible = "Not Eligible"

type badgeTier struct {
	minTax int
	maxTax int
	name   string
}

// Tier boundaries are fixed. A submission keeps the badge name computed at
// creation time even if this table changes later.
var badgeTiers = []badgeTier{
	{100_000, 299_999, "Silver Contributor"},
	{300_000, 599_999, "Gold Contributor"},
	{600_000, 999_999, "Platinum Contributor"},
	{1_000_000, 2_499_999, "Diamond Nation Builder"},
	{2_500_000, -1, "Bharat Ratna Contributor"}, // -1 = unbounded above
}

// BadgeForTax maps a tax amount to its badge tier name.
func BadgeForTax(taxPaid int) string {
	for _, tier := range badgeTiers {
		if taxPaid >= tier.minTax && (tier.maxTax < 0 || taxPaid <= tier.maxTax) {
			return tier.name
		}
	}
	return TierNotEligible
}
