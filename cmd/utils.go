package cmd

import (
	"errors"
	"math"
	"strings"

	"github.com/renokit/reno/api"
)

// newApiClient builds the backend client from config, with digest auth when
// credentials are configured. Returns an error when no endpoint is set.
func newApiClient() (*api.Client, error) {
	if Cfg == nil || Cfg.ApiBase == "" {
		return nil, errors.New("api endpoint not configured")
	}
	if Cfg.ApiUser != "" {
		return api.NewClientWithAuth(Cfg.ApiBase, Cfg.ApiUser, Cfg.ApiPassword), nil
	}
	return api.NewClient(Cfg.ApiBase), nil
}

// MapRoomAlias maps a room alias to a room name. If it's not found in the map, it returns the original string.
func MapRoomAlias(to string) string {
	if Cfg == nil {
		return to
	}
	aliasMap := Cfg.RoomAliases
	if aliasMap == nil {
		return to
	}

	if val, ok := aliasMap[strings.ToUpper(to)]; ok {
		return val
	}

	return to
}

// TruncateFront truncates a string from the front if it exceeds maxLen.
func TruncateFront(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:]
	}
	return "..." + s[len(s)-maxLen+3:]
}

// ToFileSlug converts a display name into a filesystem-friendly slug:
// "Kitchen Flooring" -> "kitchen-flooring".
func ToFileSlug(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Plural returns singular when n is 1, plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// PercentOf returns spent as a whole percentage of budget, 0 without a budget.
func PercentOf(spent, budget float64) int {
	if budget <= 0 {
		return 0
	}
	return int(math.Round(spent / budget * 100))
}
