package ldapwire

import (
	"errors"

	"github.com/KilimcininKorOglu/ldapwire/attrvalue"
	"github.com/KilimcininKorOglu/ldapwire/ber"
	"github.com/KilimcininKorOglu/ldapwire/filter"
	"github.com/KilimcininKorOglu/ldapwire/ldap"
	"github.com/KilimcininKorOglu/ldapwire/registry"
)

// ErrPDUTooLarge is returned by Decode when data exceeds Config.MaxPDUSize.
var ErrPDUTooLarge = errors.New("ldapwire: PDU exceeds configured maximum size")

// Codec binds a Registry and a BinaryAttributeDetector together with a
// Config, and is the single entry point a transport or server calls once
// it has a complete LDAPMessage's worth of bytes: bytes arrive, the
// message grammar decodes the envelope, the operation-specific type is
// parsed from the envelope's opaque payload, and — for SearchResultEntry
// and AddRequest, the two operations that carry attribute values —
// attribute value policy is handed off to the configured Detector.
//
// A Codec is not a package-level singleton: construct one with New per
// caller that needs its own registered controls/extended operations.
type Codec struct {
	Registry *registry.Registry
	Detector *attrvalue.Detector
	Config   Config
}

// New returns a Codec with an empty Registry, a Detector seeded with the
// built-in binary-attribute policy (see attrvalue.New), and cfg.
func New(cfg Config) *Codec {
	return &Codec{
		Registry: registry.New(),
		Detector: attrvalue.New(nil),
		Config:   cfg,
	}
}

// Decode parses a complete BER-encoded LDAPMessage. It enforces
// Config.MaxPDUSize on the raw input, then delegates to
// ldap.ParseLDAPMessage for the envelope. The returned message's
// Operation.Data still holds the operation's raw, un-typed payload —
// callers that need the typed request/response call the matching
// ldap.ParseX function (e.g. ldap.ParseSearchResultEntry) themselves, then
// pass the result to DecodeAttributeValues so the configured Detector is
// actually consulted, and Controls through DecodeControl for registry
// dispatch.
func (c *Codec) Decode(data []byte) (*ldap.LDAPMessage, error) {
	if c.Config.MaxPDUSize > 0 && len(data) > c.Config.MaxPDUSize {
		return nil, ErrPDUTooLarge
	}
	return ldap.ParseLDAPMessage(data)
}

// Encode serializes msg back to wire bytes.
func (c *Codec) Encode(msg *ldap.LDAPMessage) ([]byte, error) {
	return msg.Encode()
}

// DecodeFilter parses a wire-format search filter, honoring
// Config.MaxFilterDepth and Config.StrictMinimalBER.
func (c *Codec) DecodeFilter(data []byte) (*filter.Filter, error) {
	decoder := ber.NewBERDecoder(data)
	decoder.Strict = c.Config.StrictMinimalBER
	return filter.DecodeWithLimit(decoder, c.Config.MaxFilterDepth)
}

// ErrNotSearchRequest is returned by DecodeSearchRequest when op is not an
// APPLICATION 3 operation.
var ErrNotSearchRequest = errors.New("ldapwire: operation is not a SearchRequest")

// DecodeSearchRequest parses a SearchRequest operation produced by Decode,
// applying Config.StrictMinimalBER and Config.MaxFilterDepth to both the
// envelope and the nested filter CHOICE. This is the configured
// counterpart to ldap.ParseSearchRequest, which always decodes
// permissively with the filter package's default nesting bound.
func (c *Codec) DecodeSearchRequest(op *ldap.RawOperation) (*ldap.SearchRequest, error) {
	if op.Tag != ldap.ApplicationSearchRequest {
		return nil, ErrNotSearchRequest
	}
	return ldap.ParseSearchRequestWithOptions(op.Data, c.Config.StrictMinimalBER, c.Config.MaxFilterDepth)
}

// DecodeAttributeValues applies the Codec's Detector to entry, setting
// Binary on each attribute so a caller can tell which values should be
// rendered as opaque octets (e.g. LDIF ";binary") rather than text. This
// is the attribute-value-policy step of the decode flow for
// SearchResultEntry; DecodeAddAttributeValues does the same for
// AddRequest.
func (c *Codec) DecodeAttributeValues(entry *ldap.SearchResultEntry) {
	entry.ApplyBinaryDetection(c.Detector)
}

// DecodeAddAttributeValues is DecodeAttributeValues for an AddRequest,
// the other operation whose payload carries entry attribute values.
func (c *Codec) DecodeAddAttributeValues(req *ldap.AddRequest) {
	req.ApplyBinaryDetection(c.Detector)
}

// DecodeControl dispatches a single control through the Codec's Registry.
func (c *Codec) DecodeControl(ctrl ldap.Control) (any, error) {
	return c.Registry.DecodeControl(ctrl.OID, ctrl.Criticality, ctrl.Value)
}

// DecodeExtendedRequest dispatches an ExtendedRequest's value through the
// Codec's Registry.
func (c *Codec) DecodeExtendedRequest(req *ldap.ExtendedRequest) (any, error) {
	return c.Registry.DecodeExtended(req.OID, req.Value)
}

// DecodeIntermediateResponse dispatches an IntermediateResponse's value
// through the Codec's Registry.
func (c *Codec) DecodeIntermediateResponse(resp *ldap.IntermediateResponse) (any, error) {
	return c.Registry.DecodeIntermediate(resp.OID, resp.Value)
}
