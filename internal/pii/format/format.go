// Package format validates, groups and masks PII values by type.
package format

import (
	"regexp"
	"strings"

	"ledgerguard/internal/pii/models"
	dErrors "ledgerguard/pkg/domain-errors"
)

var (
	panPattern         = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern     = regexp.MustCompile(`^[0-9]{12}$`)
	bankAccountPattern = regexp.MustCompile(`^[0-9]{10,18}$`)
	ifscPattern        = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

	separators = strings.NewReplacer(" ", "", "-", "")
)

// Normalize strips separators, upper-cases and validates value for its
// type. Error messages never echo the value.
func Normalize(t models.PIIType, value string) (string, error) {
	v := strings.ToUpper(separators.Replace(strings.TrimSpace(value)))
	switch t {
	case models.PIITypePAN:
		if !panPattern.MatchString(v) {
			return "", dErrors.New(dErrors.CodeValidation, "PAN must be 5 letters, 4 digits and a letter")
		}
	case models.PIITypeAadhaar:
		if !aadhaarPattern.MatchString(v) {
			return "", dErrors.New(dErrors.CodeValidation, "Aadhaar number must be 12 digits")
		}
	case models.PIITypeBankAccount:
		if !bankAccountPattern.MatchString(v) {
			return "", dErrors.New(dErrors.CodeValidation, "account number must be between 10 and 18 digits")
		}
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown PII type")
	}
	return v, nil
}

// NormalizeIFSC validates an Indian bank branch code.
func NormalizeIFSC(code string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(code))
	if !ifscPattern.MatchString(v) {
		return "", dErrors.New(dErrors.CodeValidation, "IFSC must be 4 letters, a zero and 6 alphanumerics")
	}
	return v, nil
}

// Full groups the real characters for display: PAN 2-3-3-2, Aadhaar 4-4-4.
// Values that do not have the expected length are returned unchanged.
func Full(t models.PIIType, v string) string {
	switch t {
	case models.PIITypePAN:
		return group(v, 2, 3, 3, 2)
	case models.PIITypeAadhaar:
		return group(v, 4, 4, 4)
	}
	return v
}

func group(v string, sizes ...int) string {
	total := 0
	for _, n := range sizes {
		total += n
	}
	if len(v) != total {
		return v
	}
	parts := make([]string, 0, len(sizes))
	i := 0
	for _, n := range sizes {
		parts = append(parts, v[i:i+n])
		i += n
	}
	return strings.Join(parts, "-")
}

// Mask returns a fixed-shape placeholder keeping at most three leading or
// four trailing characters. Values of four characters or fewer are fully
// masked.
func Mask(t models.PIIType, v string) string {
	r := []rune(v)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	switch t {
	case models.PIITypePAN:
		if len(r) < 6 {
			return "****" + string(r[len(r)-1:])
		}
		return string(r[:2]) + "****" + string(r[len(r)-3:])
	case models.PIITypeAadhaar:
		return "****-****-" + string(r[len(r)-4:])
	default:
		return "******" + string(r[len(r)-4:])
	}
}
