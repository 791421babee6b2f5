package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/esparse/js/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(prog *parser.Program) error
}

// Names lists the encoders NewEncoder accepts.
var Names = []string{"json", "cbor", "tree"}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), nil
	case "cbor":
		return NewCBOREncoder(w), nil
	case "tree":
		return NewTreeEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names)
}
