package password

import "unicode"

// Strength buckets for the registration form meter.
const (
	VeryWeak = iota
	Weak
	Fair
	Good
	Strong
)

var labels = []string{"very weak", "weak", "fair", "good", "strong"}

// Score rates a password from VeryWeak to Strong using character-class
// heuristics: length, lowercase, uppercase, digits and symbols each add
// a point, capped at Strong. It is a UX meter, not a security guarantee.
func Score(pw string) (int, string) {
	if len(pw) == 0 {
		return VeryWeak, labels[VeryWeak]
	}

	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	score := 0
	if len(pw) >= 8 {
		score++
	}
	if len(pw) >= 12 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}

	if score > Strong {
		score = Strong
	}
	return score, labels[score]
}
