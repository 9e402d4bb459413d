package handler

import (
	"net/http"
	"strings"
)

// Response is the Lambda proxy envelope returned to the caller
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Result is the internal outcome of one listing. Keys is never nil.
type Result struct {
	Keys []string
	Err  error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// Envelope maps a Result onto the wire response. Failures are reported as an
// empty listing with status 200; callers of the function depend on that.
func Envelope(r Result) Response {
	keys := r.Keys
	if r.Failed() {
		keys = nil
	}
	return Response{
		StatusCode: http.StatusOK,
		Body:       encodeBody(keys),
	}
}

// encodeBody renders {"bucket_names": [...]} with ", " and ": " separators and
// ASCII-only string escapes, matching the body the function has always emitted
func encodeBody(keys []string) string {
	var b strings.Builder
	b.WriteString(`{"bucket_names": [`)
	for i, key := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		writeASCIIString(&b, key)
	}
	b.WriteString("]}")
	return b.String()
}

const hexDigits = "0123456789abcdef"

func writeASCIIString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			// only printable ASCII (space through '~') is written verbatim
			if r < 0x20 || r > 0x7e {
				writeUnicodeEscape(b, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xffff {
		// Outside the BMP: UTF-16 surrogate pair
		r -= 0x10000
		writeU16(b, 0xd800+(r>>10))
		writeU16(b, 0xdc00+(r&0x3ff))
		return
	}
	writeU16(b, r)
}

func writeU16(b *strings.Builder, v rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(v>>12)&0xf])
	b.WriteByte(hexDigits[(v>>8)&0xf])
	b.WriteByte(hexDigits[(v>>4)&0xf])
	b.WriteByte(hexDigits[v&0xf])
}
