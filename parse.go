package gson

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// maxParseDepth bounds nesting in the text parser, independent of the
// engine's traversal bound.
const maxParseDepth = 512

// Parse reads JSON text into a tree Value, preserving object member order
// and numeric literals. Errors carry the line and column of the offending
// byte.
func Parse(data []byte) (*Value, error) {
	p := &parser{data: data, line: 1, col: 1}
	p.skipSpace()
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.off < len(p.data) {
		return nil, p.errorf("unexpected content after value")
	}
	return v, nil
}

type parser struct {
	data []byte
	off  int
	line int
	col  int
}

func (p *parser) errorf(msg string) error {
	return &SyntaxError{Msg: msg, Line: p.line, Col: p.col}
}

func (p *parser) advance(n int) {
	for i := 0; i < n; i++ {
		if p.data[p.off] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.off++
	}
}

func (p *parser) skipSpace() {
	for p.off < len(p.data) {
		switch p.data[p.off] {
		case ' ', '\t', '\n', '\r':
			p.advance(1)
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.off >= len(p.data) {
		return 0, false
	}
	return p.data[p.off], true
}

func (p *parser) expect(b byte, what string) error {
	ch, ok := p.peek()
	if !ok {
		return p.errorf("unexpected end of input, expected " + what)
	}
	if ch != b {
		return p.errorf("expected " + what)
	}
	p.advance(1)
	return nil
}

func (p *parser) parseValue(depth int) (*Value, error) {
	if depth > maxParseDepth {
		return nil, p.errorf("value nested too deeply")
	}
	ch, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of input")
	}
	switch {
	case ch == '{':
		return p.parseObject(depth)
	case ch == '[':
		return p.parseArray(depth)
	case ch == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	case ch == 't':
		return p.parseLiteral("true", Bool(true))
	case ch == 'f':
		return p.parseLiteral("false", Bool(false))
	case ch == 'n':
		return p.parseLiteral("null", Null())
	case ch == '-' || (ch >= '0' && ch <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errorf("unexpected character " + string(rune(ch)))
	}
}

func (p *parser) parseLiteral(word string, v *Value) (*Value, error) {
	if p.off+len(word) > len(p.data) || string(p.data[p.off:p.off+len(word)]) != word {
		return nil, p.errorf("invalid literal")
	}
	p.advance(len(word))
	return v, nil
}

func (p *parser) parseObject(depth int) (*Value, error) {
	p.advance(1) // '{'
	obj := NewObject()
	p.skipSpace()
	if ch, ok := p.peek(); ok && ch == '}' {
		p.advance(1)
		return obj, nil
	}
	for {
		p.skipSpace()
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(':', "':'"); err != nil {
			return nil, err
		}
		p.skipSpace()
		val, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
		p.skipSpace()
		ch, ok := p.peek()
		if !ok {
			return nil, p.errorf("unexpected end of input in object")
		}
		switch ch {
		case ',':
			p.advance(1)
		case '}':
			p.advance(1)
			return obj, nil
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) parseArray(depth int) (*Value, error) {
	p.advance(1) // '['
	arr := NewArray()
	p.skipSpace()
	if ch, ok := p.peek(); ok && ch == ']' {
		p.advance(1)
		return arr, nil
	}
	for {
		p.skipSpace()
		item, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		arr.Append(item)
		p.skipSpace()
		ch, ok := p.peek()
		if !ok {
			return nil, p.errorf("unexpected end of input in array")
		}
		switch ch {
		case ',':
			p.advance(1)
		case ']':
			p.advance(1)
			return arr, nil
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *parser) parseString() (string, error) {
	if err := p.expect('"', "string"); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		ch, ok := p.peek()
		if !ok {
			return "", p.errorf("unterminated string")
		}
		switch {
		case ch == '"':
			p.advance(1)
			return b.String(), nil
		case ch == '\\':
			p.advance(1)
			esc, ok := p.peek()
			if !ok {
				return "", p.errorf("unterminated escape")
			}
			switch esc {
			case '"', '\\', '/':
				b.WriteByte(esc)
				p.advance(1)
			case 'b':
				b.WriteByte('\b')
				p.advance(1)
			case 'f':
				b.WriteByte('\f')
				p.advance(1)
			case 'n':
				b.WriteByte('\n')
				p.advance(1)
			case 'r':
				b.WriteByte('\r')
				p.advance(1)
			case 't':
				b.WriteByte('\t')
				p.advance(1)
			case 'u':
				p.advance(1)
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", p.errorf("invalid escape character")
			}
		case ch < 0x20:
			return "", p.errorf("raw control character in string")
		default:
			r, size := utf8.DecodeRune(p.data[p.off:])
			b.WriteRune(r)
			p.advance(size)
		}
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	hi, err := p.hex4()
	if err != nil {
		return 0, err
	}
	r := rune(hi)
	if utf16.IsSurrogate(r) {
		// A high surrogate must pair with a following \uXXXX low
		// surrogate; anything else becomes the replacement rune.
		if p.off+1 < len(p.data) && p.data[p.off] == '\\' && p.data[p.off+1] == 'u' {
			save := *p
			p.advance(2)
			lo, err := p.hex4()
			if err != nil {
				return 0, err
			}
			if combined := utf16.DecodeRune(r, rune(lo)); combined != utf8.RuneError {
				return combined, nil
			}
			*p = save
		}
		return utf8.RuneError, nil
	}
	return r, nil
}

func (p *parser) hex4() (uint16, error) {
	if p.off+4 > len(p.data) {
		return 0, p.errorf("truncated unicode escape")
	}
	var out uint16
	for i := 0; i < 4; i++ {
		ch := p.data[p.off+i]
		var digit byte
		switch {
		case ch >= '0' && ch <= '9':
			digit = ch - '0'
		case ch >= 'a' && ch <= 'f':
			digit = ch - 'a' + 10
		case ch >= 'A' && ch <= 'F':
			digit = ch - 'A' + 10
		default:
			return 0, p.errorf("invalid unicode escape")
		}
		out = out<<4 | uint16(digit)
	}
	p.advance(4)
	return out, nil
}

func (p *parser) parseNumber() (*Value, error) {
	start := p.off

	if ch, ok := p.peek(); ok && ch == '-' {
		p.advance(1)
	}
	if err := p.digits("integer part"); err != nil {
		return nil, err
	}
	if ch, ok := p.peek(); ok && ch == '.' {
		p.advance(1)
		if err := p.digits("fraction"); err != nil {
			return nil, err
		}
	}
	if ch, ok := p.peek(); ok && (ch == 'e' || ch == 'E') {
		p.advance(1)
		if ch, ok := p.peek(); ok && (ch == '+' || ch == '-') {
			p.advance(1)
		}
		if err := p.digits("exponent"); err != nil {
			return nil, err
		}
	}
	return Num(string(p.data[start:p.off])), nil
}

func (p *parser) digits(what string) error {
	ch, ok := p.peek()
	if !ok || ch < '0' || ch > '9' {
		return p.errorf("expected digit in " + what)
	}
	// JSON forbids leading zeros on the integer part.
	leadingZero := ch == '0' && what == "integer part"
	n := 0
	for {
		ch, ok := p.peek()
		if !ok || ch < '0' || ch > '9' {
			break
		}
		p.advance(1)
		n++
	}
	if leadingZero && n > 1 {
		return p.errorf("leading zero in number")
	}
	return nil
}
