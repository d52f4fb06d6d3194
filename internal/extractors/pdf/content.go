package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// textRun is a decoded string shown on one baseline.
type textRun struct {
	y    float64
	text string
}

// affine is a PDF transformation matrix [a b c d e f].
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

// mul returns the transformation m followed by n.
func (m affine) mul(n affine) affine {
	return affine{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func translation(tx, ty float64) affine {
	return affine{1, 0, 0, 1, tx, ty}
}

// textState is the part of the graphics state needed to place shown strings.
// Horizontal advances are not tracked; only baselines matter here.
type textState struct {
	ctm     affine
	saved   []affine
	tm      affine
	tlm     affine
	leading float64
	decoder pdf.TextEncoding
}

func (s *textState) moveLine(tx, ty float64) {
	s.tlm = translation(tx, ty).mul(s.tlm)
	s.tm = s.tlm
}

func (s *textState) baseline() float64 {
	return s.tm.mul(s.ctm)[5]
}

// pageRuns interprets a page content stream and decodes every shown string
// with the font selected at that point. Malformed operators panic, as the
// library's own interpreter does.
func pageRuns(page pdf.Page) []textRun {
	fonts := pageFonts(page)
	st := textState{ctm: identity, tm: identity, tlm: identity, decoder: rawText{}}

	var runs []textRun
	show := func(raw string) {
		runs = append(runs, textRun{y: st.baseline(), text: st.decoder.Decode(raw)})
	}

	pdf.Interpret(page.V.Key("Contents"), func(stk *pdf.Stack, op string) {
		args := popArgs(stk)

		switch op {
		case "q":
			st.saved = append(st.saved, st.ctm)
		case "Q":
			if n := len(st.saved); n > 0 {
				st.ctm = st.saved[n-1]
				st.saved = st.saved[:n-1]
			}
		case "cm":
			st.ctm = matrixArg(op, args).mul(st.ctm)
		case "BT":
			st.tm, st.tlm = identity, identity
		case "TL":
			need(op, args, 1)
			st.leading = args[0].Float64()
		case "TD":
			need(op, args, 2)
			st.leading = -args[1].Float64()
			st.moveLine(args[0].Float64(), args[1].Float64())
		case "Td":
			need(op, args, 2)
			st.moveLine(args[0].Float64(), args[1].Float64())
		case "Tm":
			st.tm = matrixArg(op, args)
			st.tlm = st.tm
		case "T*":
			st.moveLine(0, -st.leading)
		case "Tf":
			need(op, args, 2)
			st.decoder = fonts.lookup(args[0].Name())
		case "Tj":
			need(op, args, 1)
			show(args[0].RawString())
		case "'":
			need(op, args, 1)
			st.moveLine(0, -st.leading)
			show(args[0].RawString())
		case `"`:
			need(op, args, 3)
			st.moveLine(0, -st.leading)
			show(args[2].RawString())
		case "TJ":
			need(op, args, 1)
			var b strings.Builder
			for i := 0; i < args[0].Len(); i++ {
				if v := args[0].Index(i); v.Kind() == pdf.String {
					b.WriteString(v.RawString())
				}
			}
			show(b.String())
		}
	})
	return runs
}

func popArgs(stk *pdf.Stack) []pdf.Value {
	args := make([]pdf.Value, stk.Len())
	for i := len(args) - 1; i >= 0; i-- {
		args[i] = stk.Pop()
	}
	return args
}

func need(op string, args []pdf.Value, n int) {
	if len(args) != n {
		panic(fmt.Sprintf("bad %s operator: %d operands", op, len(args)))
	}
}

func matrixArg(op string, args []pdf.Value) affine {
	need(op, args, 6)
	var m affine
	for i := range m {
		m[i] = args[i].Float64()
	}
	return m
}

// fontDecoders maps font resource names to their text decoders.
type fontDecoders map[string]pdf.TextEncoding

// pageFonts prefers the ToUnicode CMap for composite fonts and falls back
// to the library's encoders otherwise.
func pageFonts(page pdf.Page) fontDecoders {
	fonts := make(fontDecoders)
	for _, name := range page.Fonts() {
		font := page.Font(name)
		if font.V.Key("Subtype").Name() == "Type0" {
			if cmap := readToUnicode(font.V.Key("ToUnicode")); cmap != nil {
				fonts[name] = cmap
				continue
			}
		}
		fonts[name] = font.Encoder()
	}
	return fonts
}

func (f fontDecoders) lookup(name string) pdf.TextEncoding {
	if dec, ok := f[name]; ok && dec != nil {
		return dec
	}
	return rawText{}
}

// rawText passes bytes through for text shown without a known font.
type rawText struct{}

func (rawText) Decode(raw string) string {
	return raw
}
