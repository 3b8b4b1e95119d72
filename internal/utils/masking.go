package utils

// MaskTail hides all but the last four characters of a sensitive value,
// e.g. account numbers and tax identifiers on list endpoints. Values of four
// characters or fewer are fully masked; empty stays empty.
func MaskTail(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
