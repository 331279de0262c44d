package enums

import "fmt"

// Tier selects which of a material's two per-gram prices applies to a sale.
// Retail additionally rounds the unit price up to the next multiple of 1000
// currency units before weighing.
type Tier string

const (
	TierBulk   Tier = "BULK"
	TierRetail Tier = "RETAIL"
)

var validTiers = []Tier{
	TierBulk,
	TierRetail,
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Tier.
func (t Tier) IsValid() bool {
	for _, candidate := range validTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTier converts raw input into a Tier.
func ParseTier(value string) (Tier, error) {
	for _, candidate := range validTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tier %q", value)
}
