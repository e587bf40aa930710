package usecase

import (
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"strings"
)

const (
	HistoryLimit   = 50
	SearchLimit    = 20
	SuggestLimit   = 10
	TrendingLimit  = 20
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ParseDuration converts "S", "M:SS" or "H:MM:SS" to seconds. Anything else
// yields 0.
func ParseDuration(duration string) int {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0
	}

	parts := strings.Split(duration, ":")
	if len(parts) > 3 {
		return 0
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// GenerateHandle derives "@name_NNN" from a display name.
func GenerateHandle(name string, rng *rand.Rand) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), "_"))
	if base == "" {
		base = "user"
	}
	return fmt.Sprintf("@%s_%d", base, rng.Intn(1000))
}

func DefaultAvatar(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
}
