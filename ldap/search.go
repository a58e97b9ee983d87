// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"errors"

	"github.com/KilimcininKorOglu/ldapwire/ber"
	"github.com/KilimcininKorOglu/ldapwire/filter"
)

// SearchScope represents the scope of an LDAP search operation
type SearchScope int

const (
	// ScopeBaseObject searches only the base object
	ScopeBaseObject SearchScope = 0
	// ScopeSingleLevel searches one level below the base object
	ScopeSingleLevel SearchScope = 1
	// ScopeWholeSubtree searches the entire subtree
	ScopeWholeSubtree SearchScope = 2
)

// String returns the string representation of the search scope
func (s SearchScope) String() string {
	switch s {
	case ScopeBaseObject:
		return "BaseObject"
	case ScopeSingleLevel:
		return "SingleLevel"
	case ScopeWholeSubtree:
		return "WholeSubtree"
	default:
		return "Unknown"
	}
}

// DerefAliases represents how aliases should be dereferenced during search
type DerefAliases int

const (
	// DerefNever never dereferences aliases
	DerefNever DerefAliases = 0
	// DerefInSearching dereferences aliases when searching subordinates
	DerefInSearching DerefAliases = 1
	// DerefFindingBaseObj dereferences aliases when finding the base object
	DerefFindingBaseObj DerefAliases = 2
	// DerefAlways always dereferences aliases
	DerefAlways DerefAliases = 3
)

// String returns the string representation of the deref aliases setting
func (d DerefAliases) String() string {
	switch d {
	case DerefNever:
		return "NeverDerefAliases"
	case DerefInSearching:
		return "DerefInSearching"
	case DerefFindingBaseObj:
		return "DerefFindingBaseObj"
	case DerefAlways:
		return "DerefAlways"
	default:
		return "Unknown"
	}
}

// SearchRequest represents an LDAP Search Request
// SearchRequest ::= [APPLICATION 3] SEQUENCE {
//
//	baseObject      LDAPDN,
//	scope           ENUMERATED { baseObject(0), singleLevel(1), wholeSubtree(2) },
//	derefAliases    ENUMERATED { neverDerefAliases(0), derefInSearching(1),
//	                             derefFindingBaseObj(2), derefAlways(3) },
//	sizeLimit       INTEGER (0 .. maxInt),
//	timeLimit       INTEGER (0 .. maxInt),
//	typesOnly       BOOLEAN,
//	filter          Filter,
//	attributes      AttributeSelection
//
// }
type SearchRequest struct {
	// BaseObject is the base DN for the search
	BaseObject string
	// Scope is the search scope
	Scope SearchScope
	// DerefAliases specifies how aliases should be dereferenced
	DerefAliases DerefAliases
	// SizeLimit is the maximum number of entries to return (0 = no limit)
	SizeLimit int
	// TimeLimit is the maximum time in seconds (0 = no limit)
	TimeLimit int
	// TypesOnly if true, only attribute types are returned (no values)
	TypesOnly bool
	// Filter is the search filter
	Filter *filter.Filter
	// Attributes is the list of attributes to return (empty = all user attributes)
	Attributes []string
}

// Errors for SearchRequest parsing
var (
	// ErrInvalidSearchScope is returned when the search scope is invalid
	ErrInvalidSearchScope = errors.New("ldap: invalid search scope")
	// ErrInvalidDerefAliases is returned when the deref aliases value is invalid
	ErrInvalidDerefAliases = errors.New("ldap: invalid deref aliases value")
	// ErrMissingFilter is returned when a SearchRequest has no filter set
	ErrMissingFilter = errors.New("ldap: search request missing filter")
)

// ParseSearchRequest parses a SearchRequest from raw operation data.
// The data should be the contents of the APPLICATION 3 tag (without the tag and length).
// It decodes permissively (non-strict BER, default filter nesting depth);
// use ParseSearchRequestWithOptions to apply a Config's StrictMinimalBER
// and MaxFilterDepth knobs.
func ParseSearchRequest(data []byte) (*SearchRequest, error) {
	return ParseSearchRequestWithOptions(data, false, 0)
}

// ParseSearchRequestWithOptions is ParseSearchRequest with the decoder's
// strictness and the filter sub-grammar's nesting bound exposed, so a
// caller such as a Codec can apply its Config. maxFilterDepth <= 0 falls
// back to filter.MaxDepth.
func ParseSearchRequestWithOptions(data []byte, strict bool, maxFilterDepth int) (*SearchRequest, error) {
	if len(data) == 0 {
		return nil, NewParseError(0, "empty search request data", nil)
	}

	decoder := ber.NewBERDecoder(data)
	decoder.Strict = strict
	req := &SearchRequest{}

	// Read baseObject (LDAPDN - OCTET STRING)
	baseBytes, err := decoder.ReadOctetString()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read baseObject", err)
	}
	req.BaseObject = string(baseBytes)

	// Read scope (ENUMERATED)
	scope, err := decoder.ReadEnumerated()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read scope", err)
	}
	if scope < 0 || scope > 2 {
		return nil, ErrInvalidSearchScope
	}
	req.Scope = SearchScope(scope)

	// Read derefAliases (ENUMERATED)
	deref, err := decoder.ReadEnumerated()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read derefAliases", err)
	}
	if deref < 0 || deref > 3 {
		return nil, ErrInvalidDerefAliases
	}
	req.DerefAliases = DerefAliases(deref)

	// Read sizeLimit (INTEGER)
	sizeLimit, err := decoder.ReadInteger()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read sizeLimit", err)
	}
	req.SizeLimit = int(sizeLimit)

	// Read timeLimit (INTEGER)
	timeLimit, err := decoder.ReadInteger()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read timeLimit", err)
	}
	req.TimeLimit = int(timeLimit)

	// Read typesOnly (BOOLEAN)
	typesOnly, err := decoder.ReadBoolean()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read typesOnly", err)
	}
	req.TypesOnly = typesOnly

	// Read filter (context-specific tagged CHOICE)
	f, err := filter.DecodeWithLimit(decoder, maxFilterDepth)
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read filter", err)
	}
	req.Filter = f

	// Read attributes (SEQUENCE OF AttributeDescription)
	attrSeqLen, err := decoder.ExpectSequence()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read attributes sequence", err)
	}

	attrEnd := decoder.Offset() + attrSeqLen
	var attributes []string
	for decoder.Offset() < attrEnd && decoder.Remaining() > 0 {
		attrBytes, err := decoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read attribute", err)
		}
		attributes = append(attributes, string(attrBytes))
	}
	req.Attributes = attributes

	return req, nil
}

// Encode encodes the SearchRequest to BER format (without the APPLICATION
// tag). Fields are written in reverse declaration order (attributes,
// filter, typesOnly, timeLimit, sizeLimit, derefAliases, scope, baseObject).
func (r *SearchRequest) Encode() ([]byte, error) {
	if r.Filter == nil {
		return nil, ErrMissingFilter
	}

	buf := ber.NewAsn1Buffer()

	// Write attributes (SEQUENCE OF AttributeDescription), last declared first
	attrMark := buf.Mark()
	for i := len(r.Attributes) - 1; i >= 0; i-- {
		if err := buf.WriteOctetString([]byte(r.Attributes[i])); err != nil {
			return nil, err
		}
	}
	if err := buf.WrapSequence(attrMark); err != nil {
		return nil, err
	}

	// Write filter (context-specific tagged CHOICE)
	if err := r.Filter.Encode(buf); err != nil {
		return nil, err
	}

	// Write typesOnly (BOOLEAN)
	if err := buf.WriteBoolean(r.TypesOnly); err != nil {
		return nil, err
	}

	// Write timeLimit (INTEGER)
	if err := buf.WriteInteger(int64(r.TimeLimit)); err != nil {
		return nil, err
	}

	// Write sizeLimit (INTEGER)
	if err := buf.WriteInteger(int64(r.SizeLimit)); err != nil {
		return nil, err
	}

	// Write derefAliases (ENUMERATED)
	if err := buf.WriteEnumerated(int64(r.DerefAliases)); err != nil {
		return nil, err
	}

	// Write scope (ENUMERATED)
	if err := buf.WriteEnumerated(int64(r.Scope)); err != nil {
		return nil, err
	}

	// Write baseObject (OCTET STRING)
	if err := buf.WriteOctetString([]byte(r.BaseObject)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Validate validates the SearchRequest.
func (r *SearchRequest) Validate() error {
	if r.Scope < ScopeBaseObject || r.Scope > ScopeWholeSubtree {
		return ErrInvalidSearchScope
	}
	if r.DerefAliases < DerefNever || r.DerefAliases > DerefAlways {
		return ErrInvalidDerefAliases
	}
	if r.Filter == nil {
		return ErrMissingFilter
	}
	return nil
}

