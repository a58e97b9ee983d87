// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"errors"

	"github.com/KilimcininKorOglu/ldapwire/ber"
)

// Context-specific tags for response fields
const (
	// ContextTagReferral is the tag for referral URIs in LDAPResult [3]
	ContextTagReferral = 3
	// ContextTagServerSASLCreds is the tag for server SASL credentials in BindResponse [7]
	ContextTagServerSASLCreds = 7
)

// LDAPResult represents the common result structure used in most LDAP responses.
// Per RFC 4511 Section 4.1.9:
// LDAPResult ::= SEQUENCE {
//
//	resultCode         ENUMERATED { ... },
//	matchedDN          LDAPDN,
//	diagnosticMessage  LDAPString,
//	referral           [3] Referral OPTIONAL
//
// }
type LDAPResult struct {
	// ResultCode indicates the outcome of the operation
	ResultCode ResultCode
	// MatchedDN contains the DN of the last entry matched during processing
	MatchedDN string
	// DiagnosticMessage contains additional diagnostic information
	DiagnosticMessage string
	// Referral contains URIs to other servers (optional)
	Referral []string
}

// Encode writes the LDAPResult fields onto buf in reverse declaration order
// (referral, diagnosticMessage, matchedDN, resultCode), for a caller that
// has already written whatever fields follow LDAPResult in its own SEQUENCE
// and still needs to wrap the whole thing in an APPLICATION tag.
func (r *LDAPResult) Encode(buf *ber.Asn1Buffer) error {
	// Write referral [3] if present
	if len(r.Referral) > 0 {
		refMark := buf.Mark()
		for i := len(r.Referral) - 1; i >= 0; i-- {
			if err := buf.WriteOctetString([]byte(r.Referral[i])); err != nil {
				return err
			}
		}
		if err := buf.WrapContextTag(ContextTagReferral, refMark); err != nil {
			return err
		}
	}

	// Write diagnosticMessage (LDAPString - OCTET STRING)
	if err := buf.WriteOctetString([]byte(r.DiagnosticMessage)); err != nil {
		return err
	}

	// Write matchedDN (LDAPDN - OCTET STRING)
	if err := buf.WriteOctetString([]byte(r.MatchedDN)); err != nil {
		return err
	}

	// Write resultCode (ENUMERATED)
	return buf.WriteEnumerated(int64(r.ResultCode))
}

// parseLDAPResult reads the common LDAPResult fields from decoder.
// Per RFC 4511 Section 4.1.9, referral [3] is optional and, if present,
// always follows diagnosticMessage.
func parseLDAPResult(decoder *ber.BERDecoder) (LDAPResult, error) {
	var r LDAPResult

	code, err := decoder.ReadEnumerated()
	if err != nil {
		return r, NewParseError(decoder.Offset(), "failed to read resultCode", err)
	}
	r.ResultCode = ResultCode(code)

	matchedDN, err := decoder.ReadOctetString()
	if err != nil {
		return r, NewParseError(decoder.Offset(), "failed to read matchedDN", err)
	}
	r.MatchedDN = string(matchedDN)

	diagMsg, err := decoder.ReadOctetString()
	if err != nil {
		return r, NewParseError(decoder.Offset(), "failed to read diagnosticMessage", err)
	}
	r.DiagnosticMessage = string(diagMsg)

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagReferral) {
		refLength, err := decoder.ExpectContextTag(ContextTagReferral)
		if err != nil {
			return r, NewParseError(decoder.Offset(), "failed to read referral", err)
		}
		end := decoder.Offset() + refLength
		var referral []string
		for decoder.Offset() < end && decoder.Remaining() > 0 {
			uri, err := decoder.ReadOctetString()
			if err != nil {
				return r, NewParseError(decoder.Offset(), "failed to read referral URI", err)
			}
			referral = append(referral, string(uri))
		}
		r.Referral = referral
	}

	return r, nil
}

// BindResponse represents an LDAP Bind response.
// Per RFC 4511 Section 4.2.2:
// BindResponse ::= [APPLICATION 1] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	serverSaslCreds    [7] OCTET STRING OPTIONAL
//
// }
type BindResponse struct {
	// LDAPResult contains the common result fields
	LDAPResult
	// ServerSASLCreds contains server SASL credentials (optional)
	ServerSASLCreds []byte
}

// Encode encodes the BindResponse to BER format. serverSaslCreds is the
// last declared field, so it is written first.
func (r *BindResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write serverSaslCreds [7] if present
	if len(r.ServerSASLCreds) > 0 {
		if err := buf.WriteTaggedValue(ContextTagServerSASLCreds, false, r.ServerSASLCreds); err != nil {
			return nil, err
		}
	}

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	if err := buf.WrapApplicationTag(ApplicationBindResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseBindResponse parses the content of an [APPLICATION 1] BindResponse.
func ParseBindResponse(data []byte) (*BindResponse, error) {
	decoder := ber.NewBERDecoder(data)

	result, err := parseLDAPResult(decoder)
	if err != nil {
		return nil, err
	}

	resp := &BindResponse{LDAPResult: result}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagServerSASLCreds) {
		_, _, creds, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read serverSaslCreds", err)
		}
		resp.ServerSASLCreds = creds
	}

	return resp, nil
}

// PartialAttribute represents an attribute with its values.
// Per RFC 4511 Section 4.1.7:
// PartialAttribute ::= SEQUENCE {
//
//	type       AttributeDescription,
//	vals       SET OF value AttributeValue
//
// }
type PartialAttribute struct {
	// Type is the attribute description (name or OID)
	Type string
	// Values contains the attribute values
	Values [][]byte
	// Binary indicates whether Values should be treated as opaque octets
	// rather than text. It is not part of the wire encoding; it is set by
	// ApplyBinaryDetection after decoding.
	Binary bool
}

// BinaryAttributeDetector decides whether an attribute's values should be
// treated as opaque binary octets. attrvalue.Detector implements this
// interface; ldap depends only on the interface so it stays decoupled
// from any concrete binary-detection implementation or schema engine.
type BinaryAttributeDetector interface {
	IsBinary(attributeID string) bool
}

// ApplyBinaryDetection sets Binary on each of r's Attributes using
// detector. Callers that never consult attribute value policy may leave
// detector nil, in which case this is a no-op.
func (r *SearchResultEntry) ApplyBinaryDetection(detector BinaryAttributeDetector) {
	if detector == nil {
		return
	}
	for i := range r.Attributes {
		r.Attributes[i].Binary = detector.IsBinary(r.Attributes[i].Type)
	}
}

// SearchResultEntry represents a search result entry.
// Per RFC 4511 Section 4.5.2:
// SearchResultEntry ::= [APPLICATION 4] SEQUENCE {
//
//	objectName      LDAPDN,
//	attributes      PartialAttributeList
//
// }
// PartialAttributeList ::= SEQUENCE OF partialAttribute PartialAttribute
type SearchResultEntry struct {
	// ObjectName is the DN of the entry
	ObjectName string
	// Attributes contains the entry's attributes
	Attributes []PartialAttribute
}

// Encode encodes the SearchResultEntry to BER format.
func (r *SearchResultEntry) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write attributes (SEQUENCE OF PartialAttribute), last declared first
	attrSeqMark := buf.Mark()
	for i := len(r.Attributes) - 1; i >= 0; i-- {
		attr := r.Attributes[i]

		partialAttrMark := buf.Mark()

		// Write vals (SET OF AttributeValue)
		valsMark := buf.Mark()
		for j := len(attr.Values) - 1; j >= 0; j-- {
			if err := buf.WriteOctetString(attr.Values[j]); err != nil {
				return nil, err
			}
		}
		if err := buf.WrapSet(valsMark); err != nil {
			return nil, err
		}

		// Write type (AttributeDescription - OCTET STRING)
		if err := buf.WriteOctetString([]byte(attr.Type)); err != nil {
			return nil, err
		}

		if err := buf.WrapSequence(partialAttrMark); err != nil {
			return nil, err
		}
	}
	if err := buf.WrapSequence(attrSeqMark); err != nil {
		return nil, err
	}

	// Write objectName (LDAPDN - OCTET STRING)
	if err := buf.WriteOctetString([]byte(r.ObjectName)); err != nil {
		return nil, err
	}

	if err := buf.WrapApplicationTag(ApplicationSearchResultEntry, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseSearchResultEntry parses the content of an [APPLICATION 4] SearchResultEntry.
func ParseSearchResultEntry(data []byte) (*SearchResultEntry, error) {
	decoder := ber.NewBERDecoder(data)

	objectName, err := decoder.ReadOctetString()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read objectName", err)
	}

	attrsDecoder, err := decoder.ReadSequenceContents()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read attributes", err)
	}

	var attributes []PartialAttribute
	for attrsDecoder.Remaining() > 0 {
		attrDecoder, err := attrsDecoder.ReadSequenceContents()
		if err != nil {
			return nil, NewParseError(attrsDecoder.Offset(), "failed to read partialAttribute", err)
		}

		attrType, err := attrDecoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(attrDecoder.Offset(), "failed to read attribute type", err)
		}

		valsDecoder, err := attrDecoder.ReadSetContents()
		if err != nil {
			return nil, NewParseError(attrDecoder.Offset(), "failed to read attribute values", err)
		}

		var values [][]byte
		for valsDecoder.Remaining() > 0 {
			val, err := valsDecoder.ReadOctetString()
			if err != nil {
				return nil, NewParseError(valsDecoder.Offset(), "failed to read attribute value", err)
			}
			values = append(values, val)
		}

		attributes = append(attributes, PartialAttribute{Type: string(attrType), Values: values})
	}

	return &SearchResultEntry{ObjectName: string(objectName), Attributes: attributes}, nil
}

// SearchResultReference represents a continuation reference returned during a
// search operation.
// Per RFC 4511 Section 4.5.3:
// SearchResultReference ::= [APPLICATION 19] SEQUENCE SIZE (1..MAX) OF uri URI
type SearchResultReference struct {
	// Referrals contains one or more LDAP URLs to continue the search at.
	Referrals []string
}

// ErrEmptySearchResultReference is returned when a SearchResultReference is
// encoded or decoded with no referral URIs, violating the SIZE (1..MAX)
// constraint in RFC 4511.
var ErrEmptySearchResultReference = errors.New("ldap: SearchResultReference must contain at least one URI")

// Encode encodes the SearchResultReference to BER format.
func (r *SearchResultReference) Encode() ([]byte, error) {
	if len(r.Referrals) == 0 {
		return nil, ErrEmptySearchResultReference
	}

	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	for i := len(r.Referrals) - 1; i >= 0; i-- {
		if err := buf.WriteOctetString([]byte(r.Referrals[i])); err != nil {
			return nil, err
		}
	}

	if err := buf.WrapApplicationTag(ApplicationSearchResultReference, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseSearchResultReference parses the content of an
// [APPLICATION 19] SearchResultReference.
func ParseSearchResultReference(data []byte) (*SearchResultReference, error) {
	decoder := ber.NewBERDecoder(data)

	var referrals []string
	for decoder.Remaining() > 0 {
		uri, err := decoder.ReadOctetString()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read uri", err)
		}
		referrals = append(referrals, string(uri))
	}

	if len(referrals) == 0 {
		return nil, ErrEmptySearchResultReference
	}

	return &SearchResultReference{Referrals: referrals}, nil
}

// SearchResultDone represents the final response to a search operation.
// Per RFC 4511 Section 4.5.2:
// SearchResultDone ::= [APPLICATION 5] LDAPResult
type SearchResultDone struct {
	LDAPResult
}

// Encode encodes the SearchResultDone to BER format.
func (r *SearchResultDone) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	// Write APPLICATION 5 tag
	if err := buf.WrapApplicationTag(ApplicationSearchResultDone, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseSearchResultDone parses the content of an [APPLICATION 5] SearchResultDone.
func ParseSearchResultDone(data []byte) (*SearchResultDone, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &SearchResultDone{LDAPResult: result}, nil
}

// ModifyResponse represents the response to a modify operation.
// Per RFC 4511 Section 4.6:
// ModifyResponse ::= [APPLICATION 7] LDAPResult
type ModifyResponse struct {
	LDAPResult
}

// Encode encodes the ModifyResponse to BER format.
func (r *ModifyResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	// Write APPLICATION 7 tag
	if err := buf.WrapApplicationTag(ApplicationModifyResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseModifyResponse parses the content of an [APPLICATION 7] ModifyResponse.
func ParseModifyResponse(data []byte) (*ModifyResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &ModifyResponse{LDAPResult: result}, nil
}

// AddResponse represents the response to an add operation.
// Per RFC 4511 Section 4.7:
// AddResponse ::= [APPLICATION 9] LDAPResult
type AddResponse struct {
	LDAPResult
}

// Encode encodes the AddResponse to BER format.
func (r *AddResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	// Write APPLICATION 9 tag
	if err := buf.WrapApplicationTag(ApplicationAddResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseAddResponse parses the content of an [APPLICATION 9] AddResponse.
func ParseAddResponse(data []byte) (*AddResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &AddResponse{LDAPResult: result}, nil
}

// DeleteResponse represents the response to a delete operation.
// Per RFC 4511 Section 4.8:
// DelResponse ::= [APPLICATION 11] LDAPResult
type DeleteResponse struct {
	LDAPResult
}

// Encode encodes the DeleteResponse to BER format.
func (r *DeleteResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	// Write APPLICATION 11 tag
	if err := buf.WrapApplicationTag(ApplicationDelResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseDeleteResponse parses the content of an [APPLICATION 11] DeleteResponse.
func ParseDeleteResponse(data []byte) (*DeleteResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &DeleteResponse{LDAPResult: result}, nil
}

// ModifyDNResponse represents the response to a modify DN operation.
// Per RFC 4511 Section 4.9:
// ModifyDNResponse ::= [APPLICATION 13] LDAPResult
type ModifyDNResponse struct {
	LDAPResult
}

// Encode encodes the ModifyDNResponse to BER format.
func (r *ModifyDNResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	// Write APPLICATION 13 tag
	if err := buf.WrapApplicationTag(ApplicationModifyDNResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseModifyDNResponse parses the content of an [APPLICATION 13] ModifyDNResponse.
func ParseModifyDNResponse(data []byte) (*ModifyDNResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &ModifyDNResponse{LDAPResult: result}, nil
}

// CompareResponse represents the response to a compare operation.
// Per RFC 4511 Section 4.10:
// CompareResponse ::= [APPLICATION 15] LDAPResult
type CompareResponse struct {
	LDAPResult
}

// Encode encodes the CompareResponse to BER format.
func (r *CompareResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	// Write LDAPResult components
	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	// Write APPLICATION 15 tag
	if err := buf.WrapApplicationTag(ApplicationCompareResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseCompareResponse parses the content of an [APPLICATION 15] CompareResponse.
func ParseCompareResponse(data []byte) (*CompareResponse, error) {
	result, err := parseLDAPResult(ber.NewBERDecoder(data))
	if err != nil {
		return nil, err
	}
	return &CompareResponse{LDAPResult: result}, nil
}

// NewSuccessResult creates a new LDAPResult with success status.
func NewSuccessResult() LDAPResult {
	return LDAPResult{
		ResultCode:        ResultSuccess,
		MatchedDN:         "",
		DiagnosticMessage: "",
	}
}

// NewErrorResult creates a new LDAPResult with the specified error.
func NewErrorResult(code ResultCode, message string) LDAPResult {
	return LDAPResult{
		ResultCode:        code,
		MatchedDN:         "",
		DiagnosticMessage: message,
	}
}

// NewErrorResultWithDN creates a new LDAPResult with error and matched DN.
func NewErrorResultWithDN(code ResultCode, matchedDN, message string) LDAPResult {
	return LDAPResult{
		ResultCode:        code,
		MatchedDN:         matchedDN,
		DiagnosticMessage: message,
	}
}
