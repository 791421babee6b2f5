package format

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/esparse/js/parser"
)

const sample = `// greet someone
function greet(name) {
  return "hello " + name;
}
var re = /h(i)+/gi, n = 1e400, list = [1, , 2];
for (var k in greet) { if (!k) break; }
try { greet() } catch (e) {}
obj = { get x() { return 1 }, y: null };
`

func parse(t *testing.T, source string, opts ...parser.Option) *parser.Program {
	t.Helper()
	prog, err := parser.Parse(source, opts...)
	require.NoError(t, err)
	return prog
}

func allOptions() []parser.Option {
	return []parser.Option{
		parser.WithRange(),
		parser.WithLoc(),
		parser.WithSource("sample.js"),
		parser.WithComments(),
		parser.WithTokens(),
		parser.WithCommentPrefix(),
	}
}

func TestMarshalProgram(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   []parser.Option
		want   string
	}{
		{
			name:   "plain",
			source: "var x = 1;",
			want: `{"type":"Program","body":[{"type":"VariableDeclaration","declarations":[` +
				`{"type":"VariableDeclarator","id":{"type":"Identifier","name":"x"},` +
				`"init":{"type":"Literal","value":1,"raw":"1"}}],"kind":"var"}]}`,
		},
		{
			name:   "range",
			source: "x",
			opts:   []parser.Option{parser.WithRange()},
			want: `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` +
				`{"type":"Identifier","name":"x","range":[0,0]},"range":[0,0]}],"range":[0,0]}`,
		},
		{
			name:   "loc with source",
			source: "x",
			opts:   []parser.Option{parser.WithLoc(), parser.WithSource("a.js")},
			want: `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` +
				`{"type":"Identifier","name":"x","loc":{"start":{"line":1,"column":0},"end":{"line":1,"column":1},"source":"a.js"}},` +
				`"loc":{"start":{"line":1,"column":0},"end":{"line":1,"column":1},"source":"a.js"}}],` +
				`"loc":{"start":{"line":1,"column":0},"end":{"line":1,"column":1},"source":"a.js"}}`,
		},
		{
			name:   "empty collections",
			source: "",
			opts:   []parser.Option{parser.WithComments(), parser.WithTokens()},
			want:   `{"type":"Program","body":[],"comments":[],"tokens":[]}`,
		},
		{
			name:   "member and call",
			source: "a.b(c[0])",
			want: `{"type":"Program","body":[{"type":"ExpressionStatement","expression":{"type":"CallExpression",` +
				`"callee":{"type":"MemberExpression","computed":false,"object":{"type":"Identifier","name":"a"},` +
				`"property":{"type":"Identifier","name":"b"}},"arguments":[{"type":"MemberExpression","computed":true,` +
				`"object":{"type":"Identifier","name":"c"},"property":{"type":"Literal","value":0,"raw":"0"}}]}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalProgram(parse(t, tt.source, tt.opts...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestLiteralEncoding(t *testing.T) {
	data, err := MarshalProgram(parse(t, sample))
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `{"type":"Literal","value":"/h(i)+/gi","regex":{"pattern":"h(i)+","flags":"gi"},"raw":"/h(i)+/gi"}`)
	assert.Contains(t, text, `{"type":"Literal","value":null,"raw":"1e400"}`)
	assert.Contains(t, text, `{"type":"Literal","value":null,"raw":"null"}`)
	assert.Contains(t, text, `"elements":[{"type":"Literal","value":1,"raw":"1"},null,{"type":"Literal","value":2,"raw":"2"}]`)
	assert.Contains(t, text, `"each":false`)
	assert.Contains(t, text, `"guard":null`)
	assert.Contains(t, text, `"kind":"get"`)
	assert.Contains(t, text, `"operator":"!","argument":{"type":"Identifier","name":"k"},"prefix":true`)
}

func TestCommentPrefixLengthWithoutPrefix(t *testing.T) {
	prog := parse(t, "x;\n    // c\n", parser.WithRange(), parser.WithComments())
	data, err := MarshalProgram(prog)
	require.NoError(t, err)

	var doc struct {
		Comments []map[string]any `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	want := []map[string]any{{
		"type":         "Line",
		"value":        " c",
		"range":        []any{7.0, 10.0},
		"prefixLength": 4.0,
	}}
	if diff := cmp.Diff(want, doc.Comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, ValidateJSON(data))
}

func TestCommentAndTokenEncoding(t *testing.T) {
	prog := parse(t, "  // hi\nx", parser.WithRange(), parser.WithComments(), parser.WithTokens(), parser.WithCommentPrefix())
	data, err := MarshalProgram(prog)
	require.NoError(t, err)

	var doc struct {
		Comments []map[string]any `json:"comments"`
		Tokens   []map[string]any `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	want := []map[string]any{{
		"type":         "Line",
		"value":        " hi",
		"range":        []any{2.0, 6.0},
		"prefixLength": 2.0,
		"prefix":       "  ",
	}}
	if diff := cmp.Diff(want, doc.Comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}

	wantTokens := []map[string]any{{"type": "Identifier", "value": "x", "range": []any{8.0, 8.0}}}
	if diff := cmp.Diff(wantTokens, doc.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestASTJSONEncoderIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(parse(t, "x")))

	want := `{
  "type": "Program",
  "body": [
    {
      "type": "ExpressionStatement",
      "expression": {
        "type": "Identifier",
        "name": "x"
      }
    }
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestValidateJSON(t *testing.T) {
	t.Run("encoded programs validate", func(t *testing.T) {
		for _, opts := range [][]parser.Option{nil, allOptions()} {
			data, err := MarshalProgram(parse(t, sample, opts...))
			require.NoError(t, err)
			assert.NoError(t, ValidateJSON(data))
		}
	})

	invalid := []struct {
		name string
		doc  string
	}{
		{"missing body", `{"type":"Program"}`},
		{"unknown node type", `{"type":"Program","body":[{"type":"ClassDeclaration"}]}`},
		{"short range", `{"type":"Program","body":[],"range":[0]}`},
		{"bad regex flags", `{"type":"Program","body":[{"type":"Literal","value":"/a/q","regex":{"pattern":"a","flags":"q"},"raw":"/a/q"}]}`},
		{"bad token type", `{"type":"Program","body":[],"tokens":[{"type":"Template","value":"x"}]}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateJSON([]byte(tt.doc)))
		})
	}

	t.Run("not json", func(t *testing.T) {
		err := ValidateJSON([]byte("{"))
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "decode:"), err.Error())
	})
}

func TestCBOREncoder(t *testing.T) {
	prog := parse(t, sample, allOptions()...)

	first, err := (&CBOREncoder{prog: prog}).MarshalText()
	require.NoError(t, err)
	second, err := (&CBOREncoder{prog: prog}).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, first, second, "canonical encoding must be stable")

	dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, dm.Unmarshal(first, &doc))

	assert.Equal(t, "Program", doc["type"])
	body, ok := doc["body"].([]any)
	require.True(t, ok)
	assert.Len(t, body, len(prog.Body))
	tokens, ok := doc["tokens"].([]any)
	require.True(t, ok)
	assert.Len(t, tokens, len(prog.Tokens))
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(parse(t, "var x = -a[i++];", parser.WithRange())))

	want := `Program [0,15]
  VariableDeclaration [0,14] var
    VariableDeclarator [4,14]
      Identifier [4,4] x
      UnaryExpression [8,14] -
        MemberExpression [9,14] computed
          Identifier [9,9] a
          UpdateExpression [11,13] ++
            Identifier [11,11] i
`
	assert.Equal(t, want, buf.String())
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			enc, err := NewEncoder(name, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, enc)
		})
	}

	_, err := NewEncoder("xml", &bytes.Buffer{})
	assert.EqualError(t, err, `unknown format "xml" (want one of [json cbor tree])`)
}
