package attrvalue

import (
	"strings"
	"sync/atomic"
)

// Well-known binary syntax OIDs, RFC 4517, plus the generic Octet String
// syntax carried over from the teacher's internal/schema/syntax.go.
const (
	SyntaxOctetString     = "1.3.6.1.4.1.1466.115.121.1.40"
	SyntaxJPEG            = "1.3.6.1.4.1.1466.115.121.1.28"
	SyntaxCertificate     = "1.3.6.1.4.1.1466.115.121.1.8"
	SyntaxCertificateList = "1.3.6.1.4.1.1466.115.121.1.9"
	SyntaxCertificatePair = "1.3.6.1.4.1.1466.115.121.1.10"
	SyntaxAudio           = "1.3.6.1.4.1.1466.115.121.1.4"
)

// binaryOption is the attribute description option (RFC 4511 Section 4.1.5)
// that explicitly requests binary transfer regardless of detection.
const binaryOption = "binary"

// set is a plain membership set, swapped atomically for copy-on-write
// mutation.
type set map[string]struct{}

func (s set) clone() set {
	c := make(set, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

func defaultBinaryAttributes() set {
	return set{
		"usercertificate": {},
		"jpegphoto":       {},
		"photo":           {},
		"krbprincipalkey": {},
		"userpassword":    {},
		"objectguid":      {},
		"objectsid":       {},
	}
}

func defaultBinarySyntaxes() set {
	return set{
		SyntaxOctetString:     {},
		SyntaxJPEG:            {},
		SyntaxCertificate:     {},
		SyntaxCertificateList: {},
		SyntaxCertificatePair: {},
		SyntaxAudio:           {},
	}
}

// SyntaxLookup resolves an attribute description's base name to the OID of
// its LDAP syntax, as a schema engine would. ok is false when the
// attribute is unknown to the caller's schema; Detector works without one
// (schema consultation is entirely optional).
type SyntaxLookup func(attributeID string) (syntaxOID string, ok bool)

// Detector implements the binary-attribute-value policy: whether a given
// attribute description's values should be treated as opaque octets. Reads
// (IsBinary, called on every decoded attribute) never block, since the
// membership sets are copy-on-write behind atomic.Pointer; mutation
// (AddBinaryAttribute etc.) takes a lock-free read-modify-store path that
// is safe for occasional concurrent callers but not optimized for a high
// write rate, matching the read-mostly profile this predicate actually
// sees.
type Detector struct {
	names    atomic.Pointer[set]
	syntaxes atomic.Pointer[set]
	lookup   SyntaxLookup
}

// New returns a Detector seeded with the built-in binary attribute names
// and syntax OIDs. lookup may be nil, in which case IsBinary falls back to
// the name-based rule alone.
func New(lookup SyntaxLookup) *Detector {
	d := &Detector{lookup: lookup}
	names := defaultBinaryAttributes()
	syntaxes := defaultBinarySyntaxes()
	d.names.Store(&names)
	d.syntaxes.Store(&syntaxes)
	return d
}

// IsBinary reports whether attributeID's values should be treated as
// binary. attributeID may carry LDAP attribute options (e.g.
// "jpegPhoto;binary"); an explicit ";binary" option always returns true.
// Otherwise the base attribute name (case-insensitive) is checked against
// the configured name set, then — if a SyntaxLookup is configured and
// resolves the attribute — the syntax OID is checked against the
// configured syntax set.
func (d *Detector) IsBinary(attributeID string) bool {
	base, options := splitOptions(attributeID)

	for _, opt := range options {
		if strings.EqualFold(opt, binaryOption) {
			return true
		}
	}

	lowerBase := strings.ToLower(base)
	names := *d.names.Load()
	if _, ok := names[lowerBase]; ok {
		return true
	}

	if d.lookup == nil {
		return false
	}

	syntaxOID, ok := d.lookup(base)
	if !ok {
		return false
	}

	syntaxes := *d.syntaxes.Load()
	_, ok = syntaxes[syntaxOID]
	return ok
}

// splitOptions splits an attribute description into its base name and
// options, per RFC 4511 Section 4.1.5
// ("attributeDescription ::= attributeSelector" with ";option" suffixes).
func splitOptions(attributeID string) (base string, options []string) {
	parts := strings.Split(attributeID, ";")
	return parts[0], parts[1:]
}

// AddBinaryAttribute adds name (case-insensitive) to the configured set of
// attribute names always treated as binary.
func (d *Detector) AddBinaryAttribute(name string) {
	for {
		old := d.names.Load()
		next := (*old).clone()
		next[strings.ToLower(name)] = struct{}{}
		if d.names.CompareAndSwap(old, &next) {
			return
		}
	}
}

// RemoveBinaryAttribute removes name from the configured set.
func (d *Detector) RemoveBinaryAttribute(name string) {
	for {
		old := d.names.Load()
		next := (*old).clone()
		delete(next, strings.ToLower(name))
		if d.names.CompareAndSwap(old, &next) {
			return
		}
	}
}

// AddBinarySyntax adds syntaxOID to the configured set of syntax OIDs
// treated as binary.
func (d *Detector) AddBinarySyntax(syntaxOID string) {
	for {
		old := d.syntaxes.Load()
		next := (*old).clone()
		next[syntaxOID] = struct{}{}
		if d.syntaxes.CompareAndSwap(old, &next) {
			return
		}
	}
}

// RemoveBinarySyntax removes syntaxOID from the configured set.
func (d *Detector) RemoveBinarySyntax(syntaxOID string) {
	for {
		old := d.syntaxes.Load()
		next := (*old).clone()
		delete(next, syntaxOID)
		if d.syntaxes.CompareAndSwap(old, &next) {
			return
		}
	}
}
