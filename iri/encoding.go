/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package iri

import (
	"fmt"
	"unicode/utf8"
)

// percentEncodeRune percent-encodes a single rune to the output buffer if it is not an
// unreserved character.
func percentEncodeRune(ru rune, output outputBuffer) {
	if isUnreserved(ru) {
		output.writeRune(ru)
		return
	}
	var buf [utf8.MaxRune]byte
	n := utf8.EncodeRune(buf[:], ru)
	for i := range n {
		output.writeString(fmt.Sprintf("%%%02X", buf[i]))
	}
}

// readURLCodepointOrEchar processes a single rune. If it's a '%' it handles
// percent-encoding. Otherwise, it validates the rune against the provided
// function and writes it to the output. It implements lenient parsing for
// certain disallowed ASCII characters by percent-encoding them.
func (p *iriParser) readURLCodepointOrEchar(r rune, valid func(rune) bool) error {
	if r == '%' {
		return p.readEchar()
	}

	if p.unchecked {
		p.output.writeRune(r)
		return nil
	}

	if valid(r) {
		p.output.writeRune(r)
		return nil
	}

	// Leniently parse certain disallowed ASCII characters by percent-encoding them.
	// This is an optional ("MAY") behavior from RFC 3987, Section 3.1.
	if isLaxASCII(r) {
		percentEncodeRune(r, p.output)
		return nil
	}

	return &kindError{kind: KindInvalidCharacter, pos: p.pos(), message: "Invalid IRI character", char: r}
}

// readEchar handles a percent-encoded character (e.g., "%20").
func (p *iriParser) readEchar() error {
	start := p.pos() - 1 // the '%' was already consumed by the caller.
	c1, ok1 := p.input.next()
	c2, ok2 := p.input.next()
	if !ok1 || !ok2 || !isASCIIHexDigit(c1) || !isASCIIHexDigit(c2) {
		details := "%"
		if ok1 {
			details += string(c1)
		}
		if ok2 {
			details += string(c2)
		}
		return &kindError{kind: KindInvalidPercentEncoding, pos: start, message: "Invalid IRI percent encoding", details: details}
	}
	p.output.writeRune('%')
	p.output.writeRune(c1)
	p.output.writeRune(c2)
	return nil
}
