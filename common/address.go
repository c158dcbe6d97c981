package common

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const ZeroAddress = "0x0000000000000000000000000000000000000000"

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether s is a 0x prefixed 20 byte hex address.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// NormalizeAddress lower-cases a valid address; ok is false when s is malformed or the zero address.
func NormalizeAddress(s string) (normalized string, ok bool) {
	s = strings.TrimSpace(s)
	if !IsValidAddress(s) || IsZeroAddress(common.HexToAddress(s)) {
		return "", false
	}
	return strings.ToLower(s), true
}

func IsZeroAddress(address common.Address) bool {
	return address == common.HexToAddress(ZeroAddress)
}
