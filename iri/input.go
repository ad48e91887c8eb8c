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

import "unicode/utf8"

// parserInput is a forward-only cursor over a string's bytes. It decodes
// one rune at a time and tracks its position natively in bytes, since
// every other part of the parser (error positions, output buffer lengths,
// component offsets) already deals exclusively in byte offsets into the
// original input.
type parserInput struct {
	data string
	pos  int
}

// newParserInput wraps s in a cursor positioned at its first byte.
func newParserInput(s string) *parserInput {
	return &parserInput{data: s}
}

// next decodes the rune at the cursor and advances past it, reporting
// false once the input is exhausted.
func (p *parserInput) next() (rune, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(p.data[p.pos:])
	p.pos += size
	return r, true
}

// peek reports the rune at the cursor without consuming it.
func (p *parserInput) peek() (rune, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.data[p.pos:])
	return r, true
}

// startsWith reports whether the next unconsumed rune is r.
func (p *parserInput) startsWith(r rune) bool {
	next, ok := p.peek()
	return ok && next == r
}

// position reports the cursor's byte offset from the start of the input.
func (p *parserInput) position() int {
	return p.pos
}

// advanceTo moves the cursor directly to byte offset n, skipping over
// bytes without decoding them. Callers must only pass an offset that
// lands on a rune boundary they've already established (e.g. just past a
// literal ASCII prefix like "//").
func (p *parserInput) advanceTo(n int) {
	p.pos = n
}

// asStr returns the unconsumed tail of the input.
func (p *parserInput) asStr() string {
	return p.data[p.pos:]
}

// reset rewinds the cursor onto a new string, letting a single parserInput
// be reused across a base IRI and its reference instead of allocating one
// per parse.
func (p *parserInput) reset(s string) {
	p.data = s
	p.pos = 0
}
