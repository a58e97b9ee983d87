package registry

import (
	"errors"
	"strings"
)

// ErrInvalidOID is returned when a string does not conform to the
// dotted-decimal LDAPOID grammar: two or more arcs separated by dots, each
// arc a minimal decimal number (no leading zero, except the literal "0").
var ErrInvalidOID = errors.New("registry: invalid OID")

// ParseOID validates a dotted-decimal object identifier string and returns
// it unchanged if valid. It does not allocate an intermediate arc slice
// unless the caller needs one; use strings.Split(oid, ".") on the returned
// value if the individual arcs are needed.
func ParseOID(oid string) (string, error) {
	if oid == "" {
		return "", ErrInvalidOID
	}

	arcs := strings.Split(oid, ".")
	if len(arcs) < 2 {
		return "", ErrInvalidOID
	}

	for _, arc := range arcs {
		if !isMinimalDecimal(arc) {
			return "", ErrInvalidOID
		}
	}

	return oid, nil
}

// isMinimalDecimal reports whether s is "0" or a non-empty digit string
// with no leading zero.
func isMinimalDecimal(s string) bool {
	if s == "" {
		return false
	}
	if s == "0" {
		return true
	}
	if s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
