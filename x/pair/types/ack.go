package types

import (
	sdkerrors "cosmossdk.io/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of MsgInstantiateContractResponse.
const (
	ackFieldAddress protowire.Number = 1
	ackFieldData    protowire.Number = 2
)

// EncodeInstantiateAck builds the acknowledgment a ledger host returns after
// creating a contract at address.
func EncodeInstantiateAck(address string, data []byte) []byte {
	var bz []byte
	bz = protowire.AppendTag(bz, ackFieldAddress, protowire.BytesType)
	bz = protowire.AppendString(bz, address)
	if len(data) > 0 {
		bz = protowire.AppendTag(bz, ackFieldData, protowire.BytesType)
		bz = protowire.AppendBytes(bz, data)
	}
	return bz
}

// ParseInstantiateAck extracts the created contract address from an
// acknowledgment. Unknown fields are skipped.
func ParseInstantiateAck(bz []byte) (string, error) {
	if len(bz) == 0 {
		return "", sdkerrors.Wrap(ErrMalformedAck, "empty payload")
	}

	var address string
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return "", sdkerrors.Wrapf(ErrMalformedAck, "tag: %s", protowire.ParseError(n))
		}
		bz = bz[n:]

		if num == ackFieldAddress {
			if typ != protowire.BytesType {
				return "", sdkerrors.Wrapf(ErrMalformedAck, "address has wire type %d", typ)
			}
			v, m := protowire.ConsumeString(bz)
			if m < 0 {
				return "", sdkerrors.Wrapf(ErrMalformedAck, "address: %s", protowire.ParseError(m))
			}
			address = v
			bz = bz[m:]
			continue
		}

		m := protowire.ConsumeFieldValue(num, typ, bz)
		if m < 0 {
			return "", sdkerrors.Wrapf(ErrMalformedAck, "field %d: %s", num, protowire.ParseError(m))
		}
		bz = bz[m:]
	}

	if address == "" {
		return "", sdkerrors.Wrap(ErrMalformedAck, "missing contract address")
	}
	return address, nil
}
