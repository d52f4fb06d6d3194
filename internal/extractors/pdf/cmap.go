package pdf

import (
	"encoding/hex"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/ledongthuc/pdf"
)

var (
	cmapSection = regexp.MustCompile(`(?s)begin(codespacerange|bfchar|bfrange)(.*?)end(?:codespacerange|bfchar|bfrange)`)
	cmapOperand = regexp.MustCompile(`<[0-9A-Fa-f\s]*>|\[|\]`)
)

// toUnicode decodes the character codes of a composite font through its
// ToUnicode CMap. Destinations are UTF-16BE; a range destination is offset
// by the code's distance from the start of the range.
type toUnicode struct {
	width  int
	chars  map[uint32][]uint16
	ranges []cmapRange
}

type cmapRange struct {
	lo, hi uint32
	dst    []uint16
	list   [][]uint16
	isList bool
}

// cmapValue is a hex string or an array of hex strings.
type cmapValue struct {
	bytes  []byte
	list   [][]byte
	isList bool
}

// readToUnicode parses a ToUnicode stream. It returns nil when the value is
// not a stream or maps nothing.
func readToUnicode(v pdf.Value) *toUnicode {
	if v.Kind() != pdf.Stream {
		return nil
	}
	rc := v.Reader()
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return parseToUnicode(string(data))
}

// parseToUnicode reads the codespace, bfchar and bfrange sections of a CMap.
// Codes are read with the width of the first codespace range, two bytes
// when none is declared.
func parseToUnicode(data string) *toUnicode {
	m := &toUnicode{width: 2, chars: make(map[uint32][]uint16)}
	widthSet := false

	for _, section := range cmapSection.FindAllStringSubmatch(data, -1) {
		values := cmapValues(section[2])

		switch section[1] {
		case "codespacerange":
			if !widthSet && len(values) > 0 && len(values[0].bytes) > 0 {
				m.width = len(values[0].bytes)
				widthSet = true
			}
		case "bfchar":
			for i := 0; i+1 < len(values); i += 2 {
				m.chars[codeOf(values[i].bytes)] = utf16Units(values[i+1].bytes)
			}
		case "bfrange":
			for i := 0; i+2 < len(values); i += 3 {
				r := cmapRange{lo: codeOf(values[i].bytes), hi: codeOf(values[i+1].bytes)}
				if dst := values[i+2]; dst.isList {
					r.isList = true
					for _, item := range dst.list {
						r.list = append(r.list, utf16Units(item))
					}
				} else {
					r.dst = utf16Units(dst.bytes)
				}
				m.ranges = append(m.ranges, r)
			}
		}
	}

	if len(m.chars) == 0 && len(m.ranges) == 0 {
		return nil
	}
	return m
}

func cmapValues(body string) []cmapValue {
	var (
		values []cmapValue
		list   [][]byte
		inList bool
	)
	for _, tok := range cmapOperand.FindAllString(body, -1) {
		switch tok {
		case "[":
			inList, list = true, nil
		case "]":
			values = append(values, cmapValue{list: list, isList: true})
			inList = false
		default:
			b := hexBytes(tok)
			if inList {
				list = append(list, b)
			} else {
				values = append(values, cmapValue{bytes: b})
			}
		}
	}
	return values
}

// hexBytes decodes <...>, ignoring whitespace and padding an odd final digit with 0.
func hexBytes(tok string) []byte {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.Trim(tok, "<>"))
	if len(digits)%2 == 1 {
		digits += "0"
	}
	b, _ := hex.DecodeString(digits)
	return b
}

func codeOf(b []byte) uint32 {
	var c uint32
	for _, x := range b {
		c = c<<8 | uint32(x)
	}
	return c
}

func utf16Units(b []byte) []uint16 {
	units := make([]uint16, 0, (len(b)+1)/2)
	for i := 0; i < len(b); i += 2 {
		if i+1 == len(b) {
			units = append(units, uint16(b[i]))
			break
		}
		units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return units
}

// Decode maps raw codes to text. Units are collected before decoding so a
// surrogate pair split across two codes still yields one character.
func (m *toUnicode) Decode(raw string) string {
	var units []uint16
	for i := 0; i < len(raw); i += m.width {
		end := min(i+m.width, len(raw))
		units = append(units, m.lookup(codeOf([]byte(raw[i:end])))...)
	}
	return string(utf16.Decode(units))
}

func (m *toUnicode) lookup(code uint32) []uint16 {
	if units, ok := m.chars[code]; ok {
		return units
	}
	for _, r := range m.ranges {
		if code < r.lo || code > r.hi {
			continue
		}
		offset := code - r.lo
		if r.isList {
			if int(offset) < len(r.list) {
				return r.list[offset]
			}
			break
		}
		if len(r.dst) == 0 {
			break
		}
		units := append([]uint16(nil), r.dst...)
		units[len(units)-1] += uint16(offset)
		return units
	}
	return []uint16{unicode.ReplacementChar}
}
