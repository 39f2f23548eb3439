package utils

import (
	"regexp"
	"strings"
)

// Old format ABC1234 or Mercosul ABC1D23.
var platePattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$`)

// NormalizePlate strips spaces and hyphens and upper-cases the plate.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return strings.ToUpper(normalized)
}

// ValidPlate expects an already normalized plate.
func ValidPlate(plate string) bool {
	return platePattern.MatchString(plate)
}
