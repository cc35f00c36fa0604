package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/confio/tfi/x/pair/types"
)

func TestInstantiateAck(t *testing.T) {
	addr := ledgerAddr("lp").String()

	parsed, err := types.ParseInstantiateAck(types.EncodeInstantiateAck(addr, []byte("data")))
	require.NoError(t, err)
	require.Equal(t, addr, parsed)

	// unknown fields are skipped
	var bz []byte
	bz = protowire.AppendTag(bz, 7, protowire.VarintType)
	bz = protowire.AppendVarint(bz, 42)
	bz = append(bz, types.EncodeInstantiateAck(addr, nil)...)
	parsed, err = types.ParseInstantiateAck(bz)
	require.NoError(t, err)
	require.Equal(t, addr, parsed)

	for name, payload := range map[string][]byte{
		"empty":            nil,
		"garbage":          {0xff, 0xff},
		"address as int":   protowire.AppendVarint(protowire.AppendTag(nil, 1, protowire.VarintType), 1),
		"no address field": protowire.AppendBytes(protowire.AppendTag(nil, 2, protowire.BytesType), []byte("x")),
	} {
		_, err := types.ParseInstantiateAck(payload)
		require.ErrorIs(t, err, types.ErrMalformedAck, name)
	}
}
