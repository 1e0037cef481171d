package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment is a text justification for the lines that follow it.
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Character size selectors for GS !
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontWide   = 0x10
	FontTall   = 0x01
)

// Paper widths in characters at the default font
const (
	Width58mm = 32
	Width80mm = 48
)

// Document accumulates a receipt. In raw mode it emits an ESC/POS stream for
// a thermal printer; in plain mode the same calls produce a text preview
// where alignment is done with spaces and styling is dropped.
type Document struct {
	buf   bytes.Buffer
	width int
	plain bool
	align Alignment
	wide  bool
}

// NewDocument starts an ESC/POS document for a printer that fits charWidth
// characters per line.
func NewDocument(charWidth int) *Document {
	d := &Document{width: normalizeWidth(charWidth)}
	d.Init()
	return d
}

// NewTextDocument starts a plain-text document of the given width.
func NewTextDocument(charWidth int) *Document {
	return &Document{width: normalizeWidth(charWidth), plain: true}
}

func normalizeWidth(w int) int {
	if w <= 0 {
		return Width58mm
	}
	return w
}

// Width reports the number of characters per line.
func (d *Document) Width() int { return d.width }

// Init resets the printer (ESC @). No-op for plain documents.
func (d *Document) Init() *Document {
	if !d.plain {
		d.buf.Write([]byte{ESC, '@'})
	}
	d.align = AlignLeft
	d.wide = false
	return d
}

// FeedLines writes n empty lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign changes the justification of following lines.
func (d *Document) SetAlign(a Alignment) *Document {
	d.align = a
	if !d.plain {
		d.buf.Write([]byte{ESC, 'a', byte(a)})
	}
	return d
}

// SetBold toggles emphasis. Plain documents ignore it.
func (d *Document) SetBold(on bool) *Document {
	if d.plain {
		return d
	}
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize selects a character size. Double width halves the number of
// characters that fit on a line, which Text accounts for when padding.
func (d *Document) SetFontSize(size byte) *Document {
	d.wide = size&0x10 != 0
	if !d.plain {
		d.buf.Write([]byte{GS, '!', size})
	}
	return d
}

func (d *Document) lineWidth() int {
	if d.wide && !d.plain {
		return d.width / 2
	}
	return d.width
}

// Text writes s as one or more lines, wrapping at the line width. Plain
// documents pad centered and right aligned lines with spaces.
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.lineWidth()) {
		if d.plain {
			line = pad(line, d.width, d.align)
		}
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

// TextF is Text with fmt formatting.
func (d *Document) TextF(format string, args ...any) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator fills a line with char.
func (d *Document) Separator(char rune) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue writes key on the left and value flush right. When both do not
// fit, the value moves to its own right-aligned line.
func (d *Document) KeyValue(key, value string) *Document {
	kw, vw := utf8.RuneCountInString(key), utf8.RuneCountInString(value)
	if kw+vw+1 > d.width {
		d.buf.WriteString(key)
		d.buf.WriteByte(LF)
		d.buf.WriteString(pad(value, d.width, AlignRight))
		d.buf.WriteByte(LF)
		return d
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", d.width-kw-vw))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// Cut sends a full cut.
func (d *Document) Cut() *Document {
	if !d.plain {
		d.buf.Write([]byte{GS, 'V', 0x00})
	}
	return d
}

// PartialCut sends a partial cut.
func (d *Document) PartialCut() *Document {
	if !d.plain {
		d.buf.Write([]byte{GS, 'V', 0x01})
	}
	return d
}

// Bytes returns the document so far.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// String returns the document as text; mostly useful for plain documents.
func (d *Document) String() string {
	return d.buf.String()
}

// Reset clears the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	return d.Init()
}

func pad(s string, width int, a Alignment) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	switch a {
	case AlignCenter:
		return strings.Repeat(" ", (width-n)/2) + s
	case AlignRight:
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// wrap splits s on word boundaries so no line is longer than width. Words
// longer than a line are hard-split.
func wrap(s string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			lines = append(lines, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
