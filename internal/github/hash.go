package github

// Seed reduces a login to a stable non-negative integer. It is the same
// 32-bit polynomial rolling hash everywhere placeholder data is derived
// from, so repeated lookups of an unreachable account always synthesize
// identical attributes.
func Seed(login string) int64 {
	var h int32
	for i := 0; i < len(login); i++ {
		h = h*31 + int32(login[i])
	}

	// Widen before negating so MinInt32 does not overflow.
	seed := int64(h)
	if seed < 0 {
		seed = -seed
	}

	return seed
}
