package gson

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Format renders a tree Value as compact JSON. Null members already
// present in the tree are rendered; null suppression happens at encode
// time, not here.
func Format(v *Value) []byte {
	var w treeWriter
	w.write(v)
	return []byte(w.b.String())
}

// FormatIndent renders a tree Value as indented JSON using the given
// indent unit per nesting level.
func FormatIndent(v *Value, indent string) []byte {
	w := treeWriter{indent: indent}
	w.write(v)
	return []byte(w.b.String())
}

type treeWriter struct {
	b      strings.Builder
	indent string // empty means compact
	level  int
}

func (w *treeWriter) pretty() bool { return w.indent != "" }

func (w *treeWriter) newline() {
	w.b.WriteByte('\n')
	for i := 0; i < w.level; i++ {
		w.b.WriteString(w.indent)
	}
}

func (w *treeWriter) write(v *Value) {
	if v == nil {
		w.b.WriteString("null")
		return
	}
	switch v.Kind() {
	case KindNull:
		w.b.WriteString("null")
	case KindBool:
		w.b.WriteString(strconv.FormatBool(v.Bool()))
	case KindNumber:
		w.b.WriteString(v.Literal())
	case KindString:
		w.writeString(v.Str())
	case KindArray:
		w.writeArray(v)
	case KindObject:
		w.writeObject(v)
	}
}

func (w *treeWriter) writeArray(v *Value) {
	if v.Len() == 0 {
		w.b.WriteString("[]")
		return
	}
	w.b.WriteByte('[')
	w.level++
	for i, item := range v.Items() {
		if i > 0 {
			w.b.WriteByte(',')
		}
		if w.pretty() {
			w.newline()
		}
		w.write(item)
	}
	w.level--
	if w.pretty() {
		w.newline()
	}
	w.b.WriteByte(']')
}

func (w *treeWriter) writeObject(v *Value) {
	if v.Len() == 0 {
		w.b.WriteString("{}")
		return
	}
	w.b.WriteByte('{')
	w.level++
	for i, m := range v.Members() {
		if i > 0 {
			w.b.WriteByte(',')
		}
		if w.pretty() {
			w.newline()
		}
		w.writeString(m.Key)
		w.b.WriteByte(':')
		if w.pretty() {
			w.b.WriteByte(' ')
		}
		w.write(m.Value)
	}
	w.level--
	if w.pretty() {
		w.newline()
	}
	w.b.WriteByte('}')
}

const hexDigits = "0123456789abcdef"

func (w *treeWriter) writeString(s string) {
	w.b.WriteByte('"')
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '"':
			w.b.WriteString(`\"`)
			i++
		case ch == '\\':
			w.b.WriteString(`\\`)
			i++
		case ch == '\n':
			w.b.WriteString(`\n`)
			i++
		case ch == '\r':
			w.b.WriteString(`\r`)
			i++
		case ch == '\t':
			w.b.WriteString(`\t`)
			i++
		case ch < 0x20:
			w.b.WriteString(`\u00`)
			w.b.WriteByte(hexDigits[ch>>4])
			w.b.WriteByte(hexDigits[ch&0xf])
			i++
		case ch < utf8.RuneSelf:
			w.b.WriteByte(ch)
			i++
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				w.b.WriteString(`�`)
			} else {
				w.b.WriteString(s[i : i+size])
			}
			i += size
		}
	}
	w.b.WriteByte('"')
}
