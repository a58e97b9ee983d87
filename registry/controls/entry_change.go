package controls

import (
	"errors"

	"github.com/KilimcininKorOglu/ldapwire/ber"
	"github.com/KilimcininKorOglu/ldapwire/registry"
)

// EntryChangeOID is the persistent-search entry change notification
// control.
const EntryChangeOID = "1.3.6.1.4.1.4203.1.9.1.4"

// Change type bitmask values, matching the persistent search changeTypes
// field these notifications accompany.
const (
	ChangeTypeAdd    = 1
	ChangeTypeDelete = 2
	ChangeTypeModify = 4
	ChangeTypeModDN  = 8
)

// EntryChangeValue is the decoded representation of the entry change
// notification control.
// Per RFC 4511's persistent-search convention:
// EntryChangeNotification ::= SEQUENCE {
//
//	changeType    ENUMERATED { add(1), delete(2), modify(4), modDN(8) },
//	previousDN    LDAPDN OPTIONAL,
//	changeNumber  INTEGER OPTIONAL
//
// }
//
// ChangeNumber is nil when the field is absent from the wire, and is also
// normalized to nil when the wire value is -1: both mean "absent" from the
// caller's perspective. RawChangeNumberPresent preserves whether the field
// was physically present on the wire for callers that need the
// distinction.
type EntryChangeValue struct {
	ChangeType             int64
	PreviousDN             string
	ChangeNumber           *int64
	RawChangeNumberPresent bool
}

// ErrInvalidChangeNumber is returned when encoding an EntryChangeValue
// whose ChangeNumber is a negative value other than the -1 sentinel.
var ErrInvalidChangeNumber = errors.New("controls: changeNumber must be >= 0, or -1/nil for absent")

// EntryChange returns the ControlFactory for the entry change notification
// control.
func EntryChange() registry.ControlFactory {
	return registry.ControlFactory{
		OID:    EntryChangeOID,
		Decode: decodeEntryChange,
		Encode: encodeEntryChange,
	}
}

func decodeEntryChange(value []byte) (any, error) {
	decoder := ber.NewBERDecoder(value)

	if _, err := decoder.ExpectSequence(); err != nil {
		return nil, err
	}

	changeType, err := decoder.ReadEnumerated()
	if err != nil {
		return nil, err
	}

	ecv := EntryChangeValue{ChangeType: changeType}

	// previousDN is a plain LDAPDN (OCTET STRING), only present for modDN.
	if changeType == ChangeTypeModDN && decoder.Remaining() > 0 {
		dn, err := decoder.ReadOctetString()
		if err != nil {
			return nil, err
		}
		ecv.PreviousDN = string(dn)
	}

	if decoder.Remaining() > 0 {
		changeNumber, err := decoder.ReadInteger()
		if err != nil {
			return nil, err
		}
		ecv.RawChangeNumberPresent = true
		if changeNumber != -1 {
			n := changeNumber
			ecv.ChangeNumber = &n
		}
	}

	return ecv, nil
}

func encodeEntryChange(v any) ([]byte, error) {
	ecv, ok := v.(EntryChangeValue)
	if !ok {
		return nil, ErrUnexpectedControlValue
	}

	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	if ecv.ChangeNumber != nil && *ecv.ChangeNumber != -1 {
		if *ecv.ChangeNumber < 0 {
			return nil, ErrInvalidChangeNumber
		}
		if err := buf.WriteInteger(*ecv.ChangeNumber); err != nil {
			return nil, err
		}
	}

	if ecv.PreviousDN != "" {
		if err := buf.WriteOctetString([]byte(ecv.PreviousDN)); err != nil {
			return nil, err
		}
	}

	if err := buf.WriteEnumerated(ecv.ChangeType); err != nil {
		return nil, err
	}

	if err := buf.WrapSequence(mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
