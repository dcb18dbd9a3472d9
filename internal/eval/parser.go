package eval

import (
	"fmt"
)

// The grammar is a deliberately small expression subset: JSON literals,
// arrays, arithmetic, comparison, logic, the ternary operator and calls to
// allowlisted functions. Anything else fails at parse time.
//
//	ternary    := or ("?" ternary ":" ternary)?
//	or         := and ("||" and)*
//	and        := equality ("&&" equality)*
//	equality   := comparison (("=="|"!="|"==="|"!==") comparison)*
//	comparison := additive (("<"|"<="|">"|">=") additive)*
//	additive   := multiplicative (("+"|"-") multiplicative)*
//	mult       := unary (("*"|"/"|"%") unary)*
//	unary      := ("-"|"+"|"!") unary | postfix
//	postfix    := primary ("[" ternary "]")*
//	primary    := number | string | "true" | "false" | "null"
//	            | ident "(" args ")" | "(" ternary ")" | "[" elements "]"

type node interface {
	eval() (any, error)
}

type literalNode struct{ value any }

func (n literalNode) eval() (any, error) { return n.value, nil }

type arrayNode struct{ elems []node }

func (n arrayNode) eval() (any, error) {
	out := make([]any, 0, len(n.elems))
	for _, e := range n.elems {
		v, err := e.eval()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type unaryNode struct {
	op      string
	operand node
}

func (n unaryNode) eval() (any, error) {
	v, err := n.operand.eval()
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "-":
		return -toNumber(v), nil
	case "+":
		return toNumber(v), nil
	case "!":
		return !truthy(v), nil
	}
	return nil, fmt.Errorf("unknown unary operator %q", n.op)
}

type binaryNode struct {
	op          string
	left, right node
}

func (n binaryNode) eval() (any, error) {
	// short-circuit logic returns the operand itself, like the host
	// language the formulas were written for
	if n.op == "&&" || n.op == "||" {
		l, err := n.left.eval()
		if err != nil {
			return nil, err
		}
		if n.op == "&&" && !truthy(l) {
			return l, nil
		}
		if n.op == "||" && truthy(l) {
			return l, nil
		}
		return n.right.eval()
	}

	l, err := n.left.eval()
	if err != nil {
		return nil, err
	}
	r, err := n.right.eval()
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "+":
		return add(l, r), nil
	case "-":
		return toNumber(l) - toNumber(r), nil
	case "*":
		return toNumber(l) * toNumber(r), nil
	case "/":
		return toNumber(l) / toNumber(r), nil
	case "%":
		return modulo(toNumber(l), toNumber(r)), nil
	case "==":
		return looseEquals(l, r), nil
	case "!=":
		return !looseEquals(l, r), nil
	case "===":
		return strictEquals(l, r), nil
	case "!==":
		return !strictEquals(l, r), nil
	case "<", "<=", ">", ">=":
		return compare(n.op, l, r), nil
	}
	return nil, fmt.Errorf("unknown operator %q", n.op)
}

type ternaryNode struct {
	cond, then, els node
}

func (n ternaryNode) eval() (any, error) {
	c, err := n.cond.eval()
	if err != nil {
		return nil, err
	}
	if truthy(c) {
		return n.then.eval()
	}
	return n.els.eval()
}

type callNode struct {
	name string
	args []node
}

func (n callNode) eval() (any, error) {
	fn, ok := builtins[n.name]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", n.name)
	}
	args := make([]any, 0, len(n.args))
	for _, a := range n.args {
		v, err := a.eval()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return fn(args)
}

type indexNode struct {
	target, index node
}

func (n indexNode) eval() (any, error) {
	t, err := n.target.eval()
	if err != nil {
		return nil, err
	}
	i, err := n.index.eval()
	if err != nil {
		return nil, err
	}
	arr, ok := t.([]any)
	if !ok {
		if s, isStr := t.(string); isStr {
			idx := int(toNumber(i))
			runes := []rune(s)
			if idx < 0 || idx >= len(runes) {
				return nil, nil
			}
			return string(runes[idx]), nil
		}
		return nil, fmt.Errorf("cannot index %s", typeName(t))
	}
	idx := int(toNumber(i))
	if idx < 0 || idx >= len(arr) {
		return nil, nil
	}
	return arr[idx], nil
}

type parser struct {
	toks []token
	pos  int
}

func parse(src string) (node, error) {
	lx := &lexer{src: src}
	toks, err := lx.tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, fmt.Errorf("unexpected token %q at position %d", tok.text, tok.pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) matchOp(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokenOp {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			p.advance()
			return op, true
		}
	}
	return "", false
}

func (p *parser) expect(kind tokenKind, text string) error {
	tok := p.peek()
	if tok.kind != kind || tok.text != text {
		return fmt.Errorf("expected %q at position %d, got %q", text, tok.pos, tok.text)
	}
	p.advance()
	return nil
}

func (p *parser) ternary() (node, error) {
	cond, err := p.or()
	if err != nil {
		return nil, err
	}
	if _, ok := p.matchOp("?"); !ok {
		return cond, nil
	}
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokenOp, ":"); err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return ternaryNode{cond: cond, then: then, els: els}, nil
}

func (p *parser) or() (node, error) {
	return p.binary([]string{"||"}, p.and)
}

func (p *parser) and() (node, error) {
	return p.binary([]string{"&&"}, p.equality)
}

func (p *parser) equality() (node, error) {
	return p.binary([]string{"===", "!==", "==", "!="}, p.comparison)
}

func (p *parser) comparison() (node, error) {
	return p.binary([]string{"<=", ">=", "<", ">"}, p.additive)
}

func (p *parser) additive() (node, error) {
	return p.binary([]string{"+", "-"}, p.multiplicative)
}

func (p *parser) multiplicative() (node, error) {
	return p.binary([]string{"*", "/", "%"}, p.unary)
}

func (p *parser) binary(ops []string, next func() (node, error)) (node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOp(ops...)
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) unary() (node, error) {
	if op, ok := p.matchOp("-", "+", "!"); ok {
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, operand: operand}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenPunct && p.peek().text == "[" {
		p.advance()
		idx, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenPunct, "]"); err != nil {
			return nil, err
		}
		n = indexNode{target: n, index: idx}
	}
	return n, nil
}

func (p *parser) primary() (node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenNumber:
		p.advance()
		return literalNode{value: tok.num}, nil
	case tokenString:
		p.advance()
		return literalNode{value: tok.str}, nil
	case tokenIdent:
		p.advance()
		switch tok.text {
		case "true":
			return literalNode{value: true}, nil
		case "false":
			return literalNode{value: false}, nil
		case "null":
			return literalNode{value: nil}, nil
		}
		if p.peek().kind == tokenPunct && p.peek().text == "(" {
			return p.call(tok.text)
		}
		return nil, fmt.Errorf("%s is not defined", tok.text)
	case tokenPunct:
		switch tok.text {
		case "(":
			p.advance()
			n, err := p.ternary()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokenPunct, ")"); err != nil {
				return nil, err
			}
			return n, nil
		case "[":
			return p.array()
		}
	case tokenEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	}
	return nil, fmt.Errorf("unexpected token %q at position %d", tok.text, tok.pos)
}

func (p *parser) call(name string) (node, error) {
	if _, ok := builtins[name]; !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	p.advance() // "("
	var args []node
	if !(p.peek().kind == tokenPunct && p.peek().text == ")") {
		for {
			arg, err := p.ternary()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind == tokenPunct && p.peek().text == "," {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expect(tokenPunct, ")"); err != nil {
		return nil, err
	}
	return callNode{name: name, args: args}, nil
}

func (p *parser) array() (node, error) {
	p.advance() // "["
	var elems []node
	if !(p.peek().kind == tokenPunct && p.peek().text == "]") {
		for {
			e, err := p.ternary()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.peek().kind == tokenPunct && p.peek().text == "," {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expect(tokenPunct, "]"); err != nil {
		return nil, err
	}
	return arrayNode{elems: elems}, nil
}
