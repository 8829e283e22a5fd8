package selector

import (
	"fmt"
	"strings"
	"unicode"

	"deob/internal/ast"
)

// typeNames lists every name a compound selector may start with.
var typeNames = func() map[string]Pred {
	m := make(map[string]Pred)
	for k := ast.StmtExpr; k <= ast.StmtExportAll; k++ {
		m[k.String()] = Type(k.String())
	}
	for k := ast.ExprIdent; k <= ast.ExprImport; k++ {
		m[k.String()] = Type(k.String())
	}
	for k := ast.PatIdent; k <= ast.PatExpr; k++ {
		m[k.String()] = Type(k.String())
	}
	for k := ast.SpecImport; k <= ast.SpecExport; k++ {
		m[k.String()] = Type(k.String())
	}
	for _, name := range []string{
		"Program", "Property", "MethodDefinition", "PropertyDefinition",
		"VariableDeclarator", "Function", "SwitchCase",
	} {
		m[name] = Type(name)
	}
	m["Pattern"] = Is(ast.SelPat)
	m["Script"] = Is(ast.SelProgram)
	m["Module"] = Is(ast.SelProgram)
	m["LiteralNumericExpression"] = IsLit(ast.LitNumber)
	m["LiteralStringExpression"] = IsLit(ast.LitString)
	m["*"] = Any()
	return m
}()

// ParseQuery compiles a textual selector such as
//
//	Program CallExpression Literal[kind=number] + Literal
//
// Whitespace is the descendant combinator and '+' the adjacent sibling
// combinator. Compounds are a type name or '*' followed by [attr=value]
// filters on kind, op, name or value.
func ParseQuery(text string) (Query, error) {
	p := &queryParser{input: text}
	preds, err := p.parse()
	if err != nil {
		return Query{}, err
	}
	return Compile(preds...), nil
}

type queryParser struct {
	input string
	pos   int
}

func (p *queryParser) parse() ([]Pred, error) {
	var (
		out   []Pred
		chain []Pred
	)
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("query: empty selector")
	}
	for {
		c, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		chain = append(chain, c)

		hadSpace := p.skipSpace()
		if p.eof() {
			break
		}
		if p.input[p.pos] == '+' {
			p.pos++
			p.skipSpace()
			if p.eof() {
				return nil, fmt.Errorf("query: dangling '+' at position %d", p.pos)
			}
			continue
		}
		if !hadSpace {
			return nil, fmt.Errorf("query: unexpected %q at position %d", p.input[p.pos], p.pos)
		}
		out = append(out, Adjacent(chain...))
		chain = nil
	}
	return append(out, Adjacent(chain...)), nil
}

func (p *queryParser) parseCompound() (Pred, error) {
	start := p.pos
	var name string
	if !p.eof() && p.input[p.pos] == '*' {
		p.pos++
		name = "*"
	} else {
		name = p.readIdent()
	}
	if name == "" {
		if p.eof() {
			return nil, fmt.Errorf("query: expected type name at end of input")
		}
		return nil, fmt.Errorf("query: expected type name at position %d", start)
	}
	base, ok := typeNames[name]
	if !ok {
		return nil, fmt.Errorf("query: unknown node type %q at position %d", name, start)
	}
	preds := []Pred{base}
	for !p.eof() && p.input[p.pos] == '[' {
		f, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		preds = append(preds, f)
	}
	if len(preds) == 1 {
		return base, nil
	}
	return And(preds...), nil
}

func (p *queryParser) parseAttr() (Pred, error) {
	p.pos++ // [
	start := p.pos
	attr := p.readIdent()
	if attr == "" {
		return nil, fmt.Errorf("query: expected attribute name at position %d", start)
	}
	if p.eof() || p.input[p.pos] != '=' {
		return nil, fmt.Errorf("query: expected '=' at position %d", p.pos)
	}
	p.pos++
	value, err := p.readValue()
	if err != nil {
		return nil, err
	}
	if p.eof() || p.input[p.pos] != ']' {
		return nil, fmt.Errorf("query: expected ']' at position %d", p.pos)
	}
	p.pos++
	pred, ok := Attr(attr, value)
	if !ok {
		return nil, fmt.Errorf("query: unknown attribute %q at position %d", attr, start)
	}
	return pred, nil
}

func (p *queryParser) readIdent() string {
	start := p.pos
	for p.pos < len(p.input) {
		ch := rune(p.input[p.pos])
		if ch != '_' && ch != '$' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			break
		}
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *queryParser) readValue() (string, error) {
	if p.eof() {
		return "", fmt.Errorf("query: expected attribute value at end of input")
	}
	if q := p.input[p.pos]; q == '"' || q == '\'' {
		end := strings.IndexByte(p.input[p.pos+1:], q)
		if end < 0 {
			return "", fmt.Errorf("query: unterminated string at position %d", p.pos)
		}
		v := p.input[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return v, nil
	}
	end := strings.IndexByte(p.input[p.pos:], ']')
	if end < 0 {
		return "", fmt.Errorf("query: expected ']' after position %d", p.pos)
	}
	v := strings.TrimSpace(p.input[p.pos : p.pos+end])
	p.pos += end
	return v, nil
}

func (p *queryParser) skipSpace() bool {
	start := p.pos
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
			continue
		}
		break
	}
	return p.pos > start
}

func (p *queryParser) eof() bool { return p.pos >= len(p.input) }
