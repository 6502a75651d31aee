package descriptor

import (
	"strings"
	"unicode"
)

// PartKind distinguishes literal text from a reference to a named type.
type PartKind int

const (
	PartSymbol PartKind = iota
	PartType
)

func (k PartKind) String() string {
	switch k {
	case PartSymbol:
		return "Symbol"
	case PartType:
		return "Type"
	default:
		return "Unknown"
	}
}

// NamePart is one segment of a type reference. Segments are never empty.
type NamePart struct {
	Kind PartKind
	Text string
}

// Symbol returns a literal segment such as "{", ", " or ">".
func Symbol(s string) NamePart {
	return NamePart{Kind: PartSymbol, Text: s}
}

// TypeRef returns a segment that refers to a type by name.
func TypeRef(name string) NamePart {
	return NamePart{Kind: PartType, Text: name}
}

// Parts is an ordered type reference. Concatenating the segments yields the
// exact reference text.
type Parts []NamePart

// Ref returns a reference made of a single named type.
func Ref(name string) Parts {
	return Parts{TypeRef(name)}
}

// Sym returns a reference made of a single literal segment.
func Sym(s string) Parts {
	return Parts{Symbol(s)}
}

// String concatenates all segments in order, without separators.
func (p Parts) String() string {
	n := 0
	for _, part := range p {
		n += len(part.Text)
	}
	var b strings.Builder
	b.Grow(n)
	for _, part := range p {
		b.WriteString(part.Text)
	}
	return b.String()
}

// Clone returns a copy that shares nothing with p.
func (p Parts) Clone() Parts {
	if p == nil {
		return nil
	}
	out := make(Parts, len(p))
	copy(out, p)
	return out
}

// References returns the names of all referenced types, in order of
// appearance. Repeated references are reported once.
func (p Parts) References() []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range p {
		if part.Kind != PartType || seen[part.Text] {
			continue
		}
		seen[part.Text] = true
		out = append(out, part.Text)
	}
	return out
}

// Concat joins references into one, cloning every segment.
func Concat(refs ...Parts) Parts {
	var out Parts
	for _, r := range refs {
		out = append(out, r...)
	}
	return out
}

// Generic instantiates a generic type: name<a, b>.
func Generic(name string, args ...Parts) Parts {
	out := Parts{TypeRef(name)}
	if len(args) == 0 {
		return out
	}
	out = append(out, Symbol("<"))
	out = append(out, joinParts(args, ", ")...)
	return append(out, Symbol(">"))
}

// Array returns the Teal array type {elem}.
func Array(elem Parts) Parts {
	return Concat(Sym("{"), elem, Sym("}"))
}

// Map returns the Teal map type {key: value}.
func Map(key, value Parts) Parts {
	return Concat(Sym("{"), key, Sym(": "), value, Sym("}"))
}

// Function returns a function type: function(a, b): c, d.
func Function(params []Parts, returns []Parts) Parts {
	out := Parts{Symbol("function(")}
	out = append(out, joinParts(params, ", ")...)
	out = append(out, Symbol(")"))
	if len(returns) > 0 {
		out = append(out, Symbol(": "))
		out = append(out, joinParts(returns, ", ")...)
	}
	return out
}

func joinParts(refs []Parts, sep string) Parts {
	var out Parts
	for i, r := range refs {
		if i > 0 {
			out = append(out, Symbol(sep))
		}
		out = append(out, r...)
	}
	return out
}

// ParseParts splits a textual type expression into segments. Identifier runs
// (including dotted qualifiers such as Mod.Bar) become type references and
// everything between them, keywords included, becomes literal symbols, so
// ParseParts(s).String() always equals s.
func ParseParts(expr string) Parts {
	var out Parts
	emit := func(p NamePart) {
		if n := len(out); n > 0 && p.Kind == PartSymbol && out[n-1].Kind == PartSymbol {
			out[n-1].Text += p.Text
			return
		}
		out = append(out, p)
	}

	runes := []rune(expr)
	start := 0
	for start < len(runes) {
		end := start
		if isIdentStart(runes[start]) {
			for end < len(runes) && isIdentPart(runes[end]) {
				end++
			}
			word := string(runes[start:end])
			if keywords[word] {
				emit(Symbol(word))
			} else {
				emit(TypeRef(word))
			}
		} else {
			for end < len(runes) && !isIdentStart(runes[end]) {
				end++
			}
			emit(Symbol(string(runes[start:end])))
		}
		start = end
	}
	return out
}

// keywords may appear inside a type expression without naming a type.
var keywords = map[string]bool{
	"function": true,
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '.'
}
