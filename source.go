package webmanifest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"

	eng "github.com/reoring/webmanifest/internal/engine"
)

// Format identifies a manifest document syntax.
type Format int

const (
	FormatJSON  Format = iota
	FormatJSONC        // JSON with comments and trailing commas.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSONC:
		return "jsonc"
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, fmt.Errorf("webmanifest: unknown format %q", s)
}

// FormatFromPath picks a Format from a file extension. Anything that is not
// YAML or JSONC (including .webmanifest) is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".jsonc":
		return FormatJSONC
	default:
		return FormatJSON
	}
}

// ParseJSON decodes a JSON document into a Value, keeping member order.
func ParseJSON(data []byte, opts ...ParseOpt) (Value, error) {
	v, _, err := decode(eng.NewBytes(data), firstOpt(opts))
	return v, err
}

// ParseJSONReader decodes a JSON document from r.
func ParseJSONReader(r io.Reader, opts ...ParseOpt) (Value, error) {
	v, _, err := decode(eng.NewReader(r), firstOpt(opts))
	return v, err
}

// ParseJSONC decodes JSON that may contain comments and trailing commas.
func ParseJSONC(data []byte, opts ...ParseOpt) (Value, error) {
	return ParseJSON(jsonc.ToJSON(data), opts...)
}

// ParseYAML decodes a single YAML document. Mapping order is kept and aliases
// are expanded.
func ParseYAML(data []byte, opts ...ParseOpt) (Value, error) {
	v, _, err := decodeYAML(data, firstOpt(opts))
	return v, err
}

// Load decodes a document of the given format. Non-fatal findings (duplicate
// keys under Warn strictness) are returned as Issues next to the value.
func Load(r io.Reader, f Format, opt ParseOpt) (Value, Issues, error) {
	if f == FormatJSON {
		return decode(eng.NewReader(r), opt)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, nil, fmt.Errorf("webmanifest: read: %w", err)
	}
	if f == FormatYAML {
		return decodeYAML(data, opt)
	}
	return decode(eng.NewBytes(jsonc.ToJSON(data)), opt)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

// decode reads exactly one value from src under the enforcement options.
func decode(src eng.TokenSource, opt ParseOpt) (Value, Issues, error) {
	var warnings Issues
	src = eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink: func(si eng.SimpleIssue) {
			if si.Code == CodeDuplicateKey && opt.Strictness.OnDuplicateKey == Warn {
				warnings = AppendIssues(warnings, Issue{Path: si.Path, Code: si.Code, Message: si.Message})
			}
		},
	})

	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return Value{}, warnings, fmt.Errorf("webmanifest: empty document: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return Value{}, warnings, parseError(err)
	}
	v, err := decodeValue(src, tok)
	if err != nil {
		return Value{}, warnings, parseError(err)
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Value{}, warnings, parseError(err)
	}
	return v, warnings, nil
}

// parseError surfaces enforcement failures as Issues so callers can use
// AsIssues; anything else is a syntax error.
func parseError(err error) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Path: ie.Path, Code: ie.Code, Message: ie.Message}}
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("webmanifest: parse: %w", err)
}

func decodeValue(src eng.TokenSource, tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return decodeObject(src)
	case eng.KindBeginArray:
		return decodeArray(src)
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		return Number(tok.Number), nil
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null(), nil
	default:
		return Value{}, io.ErrUnexpectedEOF
	}
}

func decodeObject(src eng.TokenSource) (Value, error) {
	o := &Object{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == eng.KindEndObject {
			return ObjectValue(o), nil
		}
		if tok.Kind != eng.KindKey {
			return Value{}, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return Value{}, err
		}
		o.set(tok.String, v)
	}
}

func decodeArray(src eng.TokenSource) (Value, error) {
	items := []Value{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == eng.KindEndArray {
			return Value{kind: KindArray, arr: items}, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

// maxAliasDepth bounds alias expansion so self-referencing anchors fail
// instead of recursing forever.
const maxAliasDepth = 1000

func decodeYAML(data []byte, opt ParseOpt) (Value, Issues, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, nil, fmt.Errorf("webmanifest: parse yaml: %w", err)
	}
	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return Value{}, nil, fmt.Errorf("webmanifest: empty document: %w", io.ErrUnexpectedEOF)
	}
	toks, err := yamlTokens(&doc, nil, 0)
	if err != nil {
		return Value{}, nil, fmt.Errorf("webmanifest: parse yaml: %w", err)
	}
	return decode(&eng.SliceSource{Tokens: toks}, opt)
}

// yamlTokens flattens a YAML node tree into the engine's token stream so YAML
// input goes through the same enforcement and tree building as JSON.
func yamlTokens(n *yaml.Node, out []eng.Token, depth int) ([]eng.Token, error) {
	if depth > maxAliasDepth {
		return nil, errors.New("alias nesting too deep")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		return yamlTokens(n.Content[0], out, depth+1)
	case yaml.AliasNode:
		return yamlTokens(n.Alias, out, depth+1)
	case yaml.MappingNode:
		out = append(out, eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			out = append(out, eng.Token{Kind: eng.KindKey, String: k.Value, Offset: -1})
			var err error
			if out, err = yamlTokens(n.Content[i+1], out, depth+1); err != nil {
				return nil, err
			}
		}
		return append(out, eng.Token{Kind: eng.KindEndObject, Offset: -1}), nil
	case yaml.SequenceNode:
		out = append(out, eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		for _, c := range n.Content {
			var err error
			if out, err = yamlTokens(c, out, depth+1); err != nil {
				return nil, err
			}
		}
		return append(out, eng.Token{Kind: eng.KindEndArray, Offset: -1}), nil
	case yaml.ScalarNode:
		tok, err := yamlScalar(n)
		if err != nil {
			return nil, err
		}
		return append(out, tok), nil
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func yamlScalar(n *yaml.Node) (eng.Token, error) {
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindBool, Bool: b, Offset: -1}, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range: keep it as a float.
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return eng.Token{}, err
			}
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: -1}, nil
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10), Offset: -1}, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return eng.Token{}, err
		}
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: -1}, nil
	default:
		return eng.Token{Kind: eng.KindString, String: n.Value, Offset: -1}, nil
	}
}
