package app

import "math/rand"

// DefaultNicknames are handed out to players that join without a nickname
var DefaultNicknames = []string{
	"Red", "Blue", "Green", "Pink", "Orange", "Yellow",
	"Black", "White", "Purple", "Brown", "Cyan", "Lime",
	"Maroon", "Rose", "Banana", "Gray", "Tan", "Coral",
}

// RandomNickname returns a random default nickname
func RandomNickname(rng *rand.Rand) string {
	return DefaultNicknames[rng.Intn(len(DefaultNicknames))]
}

// RandomNicknameExcluding returns a random nickname that's not in the excluded list
func RandomNicknameExcluding(rng *rand.Rand, excluded []string) string {
	excludeMap := make(map[string]bool)
	for _, n := range excluded {
		excludeMap[n] = true
	}

	// Try to find a non-excluded nickname
	for attempts := 0; attempts < 100; attempts++ {
		name := RandomNickname(rng)
		if !excludeMap[name] {
			return name
		}
	}

	// Fallback: just return any nickname
	return RandomNickname(rng)
}
