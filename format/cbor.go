package format

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/dhamidi/esparse/js/parser"
)

// CBOREncoder writes the same tree as ASTJSONEncoder in canonical CBOR, so
// equal programs always encode to equal bytes.
type CBOREncoder struct {
	w    io.Writer
	prog *parser.Program
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) Encode(prog *parser.Program) error {
	e.prog = prog
	data, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

func (e *CBOREncoder) MarshalText() ([]byte, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	data, err := em.Marshal(plain(programToJSON(e.prog)))
	if err != nil {
		return nil, fmt.Errorf("cbor: %w", err)
	}
	return data, nil
}
