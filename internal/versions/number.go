package versions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^v(\d+)$`)

// NextNumber returns the identifier following the highest numeric suffix in
// existing: v001 for an empty list, otherwise max+1 zero-padded to at least
// three digits. Malformed identifiers are ignored, not removed.
func NextNumber(existing []string) string {
	max := 0
	for _, id := range existing {
		n, ok := parseIdentifier(id)
		if ok && n > max {
			max = n
		}
	}
	return FormatNumber(max + 1)
}

// FormatNumber renders a numeric version as a vNNN identifier, zero-padded to
// at least three digits.
func FormatNumber(n int) string {
	return fmt.Sprintf("v%03d", n)
}

// ValidateIdentifier checks an explicitly supplied identifier: it must match
// v<digits> with a numeric value of at least 1.
func ValidateIdentifier(id string) error {
	n, ok := parseIdentifier(id)
	if !ok {
		return fmt.Errorf("%w: %q must match v<digits>", ErrInvalidVersionFormat, id)
	}
	if n < 1 {
		return fmt.Errorf("%w: %q must be v001 or greater", ErrInvalidVersionFormat, id)
	}
	return nil
}

func parseIdentifier(id string) (int, bool) {
	match := identifierPattern.FindStringSubmatch(strings.TrimSpace(id))
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
