package controls

import (
	"github.com/KilimcininKorOglu/ldapwire/ber"
	"github.com/KilimcininKorOglu/ldapwire/registry"
)

// PasswordPolicyOID is the control described in
// draft-behera-ldap-password-policy-10.
const PasswordPolicyOID = "1.3.6.1.4.1.42.2.27.8.5.1"

// Password policy response error codes, per the Behera draft Section 6.2.
const (
	PasswordPolicyErrorPasswordExpired             = 0
	PasswordPolicyErrorAccountLocked                = 1
	PasswordPolicyErrorChangeAfterReset             = 2
	PasswordPolicyErrorPasswordModNotAllowed        = 3
	PasswordPolicyErrorMustSupplyOldPassword        = 4
	PasswordPolicyErrorInsufficientPasswordQuality  = 5
	PasswordPolicyErrorPasswordTooShort             = 6
	PasswordPolicyErrorPasswordTooYoung             = 7
	PasswordPolicyErrorPasswordInHistory            = 8
)

// context tags inside the warning CHOICE.
const (
	contextTagTimeBeforeExpiration = 0
	contextTagGraceAuthNsRemaining = 1
)

// context tags of the top-level PasswordPolicyResponseValue SEQUENCE.
const (
	contextTagWarning    = 0
	contextTagPolicyError = 1
)

// PasswordPolicyValue is the decoded representation of the PasswordPolicy
// response control.
// Per the Behera draft Section 6.1:
// PasswordPolicyResponseValue ::= SEQUENCE {
//
//	warning [0] CHOICE {
//	    timeBeforeExpiration [0] INTEGER,
//	    graceAuthNsRemaining [1] INTEGER } OPTIONAL,
//	error   [1] ENUMERATED OPTIONAL
//
// }
//
// HasExpiration / HasGrace distinguish "warning absent" from "warning
// present with value zero"; HasError distinguishes "no error" from
// "error code zero" (PasswordPolicyErrorPasswordExpired).
type PasswordPolicyValue struct {
	HasExpiration bool
	Expire        int64
	HasGrace      bool
	Grace         int64
	HasError      bool
	Error         int64
}

// PasswordPolicy returns the ControlFactory for the password policy
// response control.
func PasswordPolicy() registry.ControlFactory {
	return registry.ControlFactory{
		OID:    PasswordPolicyOID,
		Decode: decodePasswordPolicy,
		Encode: encodePasswordPolicy,
	}
}

func decodePasswordPolicy(value []byte) (any, error) {
	var pv PasswordPolicyValue

	if len(value) == 0 {
		return pv, nil
	}

	decoder := ber.NewBERDecoder(value)
	if _, err := decoder.ExpectSequence(); err != nil {
		return nil, err
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(contextTagWarning) {
		warningDecoder, err := decoder.ReadContextTagContents(contextTagWarning)
		if err != nil {
			return nil, err
		}

		if warningDecoder.IsContextTag(contextTagTimeBeforeExpiration) {
			expire, err := warningDecoder.ReadIntegerWithTag(contextTagTimeBeforeExpiration)
			if err != nil {
				return nil, err
			}
			pv.HasExpiration = true
			pv.Expire = expire
		} else if warningDecoder.IsContextTag(contextTagGraceAuthNsRemaining) {
			grace, err := warningDecoder.ReadIntegerWithTag(contextTagGraceAuthNsRemaining)
			if err != nil {
				return nil, err
			}
			pv.HasGrace = true
			pv.Grace = grace
		}
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(contextTagPolicyError) {
		errCode, err := decoder.ReadIntegerWithTag(contextTagPolicyError)
		if err != nil {
			return nil, err
		}
		pv.HasError = true
		pv.Error = errCode
	}

	return pv, nil
}

func encodePasswordPolicy(v any) ([]byte, error) {
	pv, ok := v.(PasswordPolicyValue)
	if !ok {
		return nil, ErrUnexpectedControlValue
	}

	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	if pv.HasError {
		if err := buf.WriteTaggedValue(contextTagPolicyError, false, encodeTaggedInt(pv.Error)); err != nil {
			return nil, err
		}
	}

	if pv.HasExpiration || pv.HasGrace {
		warningMark := buf.Mark()
		if pv.HasGrace {
			if err := buf.WriteTaggedValue(contextTagGraceAuthNsRemaining, false, encodeTaggedInt(pv.Grace)); err != nil {
				return nil, err
			}
		} else {
			if err := buf.WriteTaggedValue(contextTagTimeBeforeExpiration, false, encodeTaggedInt(pv.Expire)); err != nil {
				return nil, err
			}
		}
		if err := buf.WrapContextTag(contextTagWarning, warningMark); err != nil {
			return nil, err
		}
	}

	if err := buf.WrapSequence(mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// encodeTaggedInt renders n as minimal big-endian two's-complement bytes,
// matching ber.Asn1Buffer.WriteInteger's own encoding for the INTEGER
// fields nested inside these CHOICE/ENUMERATED context tags.
func encodeTaggedInt(n int64) []byte {
	buf := ber.NewAsn1Buffer()
	if err := buf.WriteInteger(n); err != nil {
		return nil
	}
	// WriteInteger wraps with a universal INTEGER tag+length; strip it
	// back off since WriteTaggedValue supplies the context tag instead.
	encoded := buf.Bytes()
	if len(encoded) < 2 {
		return encoded
	}
	return encoded[2:]
}
