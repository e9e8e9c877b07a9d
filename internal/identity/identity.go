package identity

import (
	"fmt"
	"strings"
)

// Principal is the authenticated caller reference. It is opaque to the rest
// of the system: services compare and order it, and every user-owned row is
// keyed by it, but nothing inspects its contents.
type Principal string

const maxPrincipalLen = 128

// Parse validates a raw principal string (typically a JWT subject claim).
func Parse(raw string) (Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty principal")
	}
	if len(raw) > maxPrincipalLen {
		return "", fmt.Errorf("principal exceeds %d bytes", maxPrincipalLen)
	}
	if strings.ContainsRune(raw, '|') {
		// '|' is reserved as the pair-key separator
		return "", fmt.Errorf("principal contains reserved character")
	}
	return Principal(raw), nil
}

func (p Principal) String() string { return string(p) }

// Less defines the canonical ordering used for pair normalization and
// deterministic tie-breaking.
func (p Principal) Less(other Principal) bool { return p < other }

// PairKey returns the stable key for the unordered pair (a, b): the two
// principals joined in canonical order. PairKey(a, b) == PairKey(b, a).
func PairKey(a, b Principal) string {
	if b.Less(a) {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}

// SplitPairKey is the inverse of PairKey.
func SplitPairKey(key string) (Principal, Principal, error) {
	lo, hi, ok := strings.Cut(key, "|")
	if !ok || lo == "" || hi == "" {
		return "", "", fmt.Errorf("malformed pair key %q", key)
	}
	return Principal(lo), Principal(hi), nil
}
