// Package marker decodes the fixed-format protocol marker embedded in an
// OP_RETURN output script.
package marker

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
)

const (
	opReturn   = 0x6a
	opData71   = 0x47
	tagLen     = 4
	keyLen     = 32
	payloadLen = tagLen + 1 + keyLen + keyLen + 2
	scriptLen  = 2 + payloadLen
)

// tag identifies the staking protocol inside the marker payload.
var tag = []byte{'s', 't', 'k', '1'}

// acceptedVersions is the set of protocol versions the live network admits.
var acceptedVersions = map[uint8]struct{}{
	0: {},
}

// Data is a decoded marker payload.
type Data struct {
	Version                uint8
	StakerPublicKeyHex     string
	FinalityProviderKeyHex string
	StakingTimeBlocks      uint16
}

// HasCandidate reports whether the script looks like a protocol marker: an
// OP_RETURN whose pushed data starts with the protocol tag. It deliberately
// ignores length and version so that malformed markers are still surfaced to
// the validator instead of silently dropped.
func HasCandidate(scriptHex string) bool {
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return false
	}
	if len(script) < 2+tagLen {
		return false
	}
	return script[0] == opReturn && bytes.Equal(script[2:2+tagLen], tag)
}

// Decode parses a marker script. The boolean result is false for anything
// that is not a well-formed marker: wrong opcode prefix, wrong total length,
// tag mismatch, or a version outside the accepted set. Decode never fails in
// any other way.
func Decode(scriptHex string) (Data, bool) {
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return Data{}, false
	}
	if len(script) != scriptLen {
		return Data{}, false
	}
	if script[0] != opReturn || script[1] != opData71 {
		return Data{}, false
	}
	payload := script[2:]
	if !bytes.Equal(payload[:tagLen], tag) {
		return Data{}, false
	}
	version := payload[tagLen]
	if _, ok := acceptedVersions[version]; !ok {
		return Data{}, false
	}

	stakerKey := payload[tagLen+1 : tagLen+1+keyLen]
	providerKey := payload[tagLen+1+keyLen : tagLen+1+2*keyLen]
	stakingTime := binary.BigEndian.Uint16(payload[tagLen+1+2*keyLen:])

	return Data{
		Version:                version,
		StakerPublicKeyHex:     hex.EncodeToString(stakerKey),
		FinalityProviderKeyHex: hex.EncodeToString(providerKey),
		StakingTimeBlocks:      stakingTime,
	}, true
}

// Encode builds a marker script for the given payload. Used by tests and
// tooling; the indexer itself only decodes.
func Encode(version uint8, stakerKey, providerKey [keyLen]byte, stakingTimeBlocks uint16) string {
	script := make([]byte, 0, scriptLen)
	script = append(script, opReturn, opData71)
	script = append(script, tag...)
	script = append(script, version)
	script = append(script, stakerKey[:]...)
	script = append(script, providerKey[:]...)
	script = binary.BigEndian.AppendUint16(script, stakingTimeBlocks)
	return hex.EncodeToString(script)
}
