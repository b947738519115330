package ruleset

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Deterministic output, so equal documents encode to equal bytes.
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// ParseCBOR decodes a CBOR document.
func ParseCBOR(data []byte) (*Document, error) {
	var doc Document
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cbor rule set document: %w", err)
	}

	return &doc, nil
}

// EncodeCBOR encodes doc as CBOR.
func EncodeCBOR(doc *Document) ([]byte, error) {
	data, err := encMode.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode cbor rule set document: %w", err)
	}

	return data, nil
}
