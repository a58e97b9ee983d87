// Package controls supplies the built-in control factories a complete LDAP
// codec ships: ManageDsaIT, Paging, PasswordPolicy and EntryChange. Each
// factory is registered into a registry.Registry by the embedding
// application; none is registered automatically, since the registry is
// codec-scoped rather than global.
package controls

import (
	"errors"

	"github.com/KilimcininKorOglu/ldapwire/registry"
)

// ManageDsaITOID is the control described in RFC 3296.
const ManageDsaITOID = "2.16.840.1.113730.3.4.2"

// ErrUnexpectedControlValue is returned when a control known to carry no
// value is decoded with a non-empty value.
var ErrUnexpectedControlValue = errors.New("controls: unexpected control value")

// ManageDsaITValue is the decoded (valueless) representation of the
// ManageDsaIT control; its presence in a request's control list is the
// entire signal, per RFC 3296.
type ManageDsaITValue struct{}

// ManageDsaIT returns the ControlFactory for the ManageDsaIT control.
func ManageDsaIT() registry.ControlFactory {
	return registry.ControlFactory{
		OID: ManageDsaITOID,
		Decode: func(value []byte) (any, error) {
			if len(value) != 0 {
				return nil, ErrUnexpectedControlValue
			}
			return ManageDsaITValue{}, nil
		},
		Encode: func(v any) ([]byte, error) {
			if _, ok := v.(ManageDsaITValue); !ok {
				return nil, ErrUnexpectedControlValue
			}
			return nil, nil
		},
	}
}
