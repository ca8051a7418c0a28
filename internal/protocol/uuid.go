package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// Placeholder is the token in a base UUID that stands in for the 16-bit id.
const Placeholder = "xxxx"

// idWidth is the number of hex digits substituted for Placeholder.
const idWidth = len(Placeholder)

var (
	errNoPlaceholder = errors.New("base uuid has no " + Placeholder + " placeholder")
	errEmptyID       = errors.New("empty hex id")
	errIDTooLong     = errors.New("hex id longer than 4 digits")
	errNotHex        = errors.New("hex id is not hexadecimal")
)

// NormalizeID turns a hex id such as "0x1001", "0XaB" or "2a19" into its
// 4-digit lower-case form. Ids wider than 4 digits are rejected rather than
// truncated.
func NormalizeID(hexID string) (string, error) {
	digits := hexID
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}
	switch {
	case digits == "":
		return "", errEmptyID
	case len(digits) > idWidth:
		return "", errIDTooLong
	}
	if _, err := strconv.ParseUint(digits, 16, 16); err != nil {
		return "", errNotHex
	}
	digits = strings.ToLower(digits)
	return strings.Repeat("0", idWidth-len(digits)) + digits, nil
}

// ExpandUUID substitutes the normalized hexID into every Placeholder in base.
func ExpandUUID(base, hexID string) (string, error) {
	if !strings.Contains(base, Placeholder) {
		return "", malformed("expand", "base_uuid", base, errNoPlaceholder)
	}
	id, err := NormalizeID(hexID)
	if err != nil {
		return "", malformed("expand", "id", hexID, err)
	}
	return strings.ReplaceAll(base, Placeholder, id), nil
}
