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

// Package iri provides types and functions for working with Internationalized
// Resource Identifiers (IRIs) and IRI references as defined by RFC 3987.
//
// The package offers two main types:
//   - Ref: Represents an IRI reference, which can be either absolute (e.g., "http://example.com/a")
//     or relative (e.g., "/a", "b", "#c").
//   - Iri: Represents a guaranteed absolute IRI, which always includes a scheme.
//
// Key features include:
//   - Strict parsing and validation against RFC 3987.
//   - High-performance "unchecked" parsing for inputs already known to be valid.
//   - Reference resolution (`Resolve`) to compute an absolute IRI from a base and a relative reference.
//   - Relativization (`Relativize`) to compute a relative reference between two absolute IRIs.
//   - Resolution variants (`ResolveTo`) that write the result into a caller-supplied strings.Builder.
package iri

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError is the error type returned by parsing functions in this package.
// It contains a descriptive message and may wrap a more specific internal error.
type ParseError struct {
	Message string
	Err     error

	wrapped error
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("IRI parse error: %s", e.Message)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind reports the category of failure, per the package's error handling
// design (see ErrorKind). If the underlying cause isn't a recognized
// internal error, it reports KindInvalidCharacter as a conservative default.
func (e *ParseError) Kind() ErrorKind {
	var ke *kindError
	if errors.As(e.wrapped, &ke) {
		return ke.Kind()
	}
	return KindInvalidCharacter
}

// Pos reports the byte offset into the input at which the failure was
// detected. See kindError.Pos for the precision this offers.
func (e *ParseError) Pos() int {
	var ke *kindError
	if errors.As(e.wrapped, &ke) {
		return ke.Pos()
	}
	return 0
}

// ErrIriRelativize is returned by the Relativize method when it's not possible
// to create a relative reference because the target IRI's path contains dot segments
// ("." or "..").  Such paths must be normalized before relativization.
var ErrIriRelativize = errors.New("it is not possible to make this IRI relative because it contains '/..' or '/.'")

// Ref represents an IRI reference, which can be either absolute or relative.
// It is an immutable type; methods that modify the IRI, like Resolve, return a new Ref.
// The internal `iri` string is stored exactly as provided to the parsing function.
type Ref struct {
	iri       string
	positions Positions
}

// ParseRef parses and validates a string as an IRI reference.
// This function is compliant with RFC 3987, Section 3.1, Step 1c.
// It parses the string as-is: no Unicode normalization, percent-decoding, or
// case folding is applied, which preserves the exact character sequence of
// the input.
func ParseRef(s string) (*Ref, error) {
	pos, err := run(s, nil, false, &voidOutputBuffer{})
	if err != nil {
		return nil, newParseError(err)
	}

	return &Ref{iri: s, positions: pos}, nil
}

// ParseRefUnchecked parses a string as an IRI reference with most of the
// validation that ParseRef performs turned off, for input that has already
// been validated by another means (e.g. it was produced by this package
// itself). Characters are not checked against their component's character
// class, the host and port are not validated, and no bidirectional-text
// checks are made. Percent-encoding syntax, a leading ':', a colon in the
// first segment of a relative path and the rule on "//" in a path without an
// authority are still checked; if one of these fails, it panics rather than
// returning an error, since the caller has asserted the input is trusted.
func ParseRefUnchecked(s string) *Ref {
	pos, err := run(s, nil, true, &voidOutputBuffer{})
	if err != nil {
		panic(newParseError(err))
	}
	return &Ref{iri: s, positions: pos}
}

// Resolve resolves a relative IRI reference against the current Ref (which acts as the base IRI).
// It returns a new, absolute Ref. This operation is equivalent to resolving a hyperlink.
func (r *Ref) Resolve(relativeIRI string) (*Ref, error) {
	builder := &strings.Builder{}
	builder.Grow(len(r.iri) + len(relativeIRI)) // Pre-allocate for efficiency.
	pos, err := r.ResolveTo(relativeIRI, builder)
	if err != nil {
		return nil, err
	}
	return &Ref{iri: builder.String(), positions: pos}, nil
}

// ResolveUnchecked is the panic-on-error counterpart of Resolve, for relative
// references already known to be well-formed.
func (r *Ref) ResolveUnchecked(relativeIRI string) *Ref {
	builder := &strings.Builder{}
	builder.Grow(len(r.iri) + len(relativeIRI))
	pos := r.ResolveUncheckedTo(relativeIRI, builder)
	return &Ref{iri: builder.String(), positions: pos}
}

// ResolveTo resolves a relative IRI reference and writes the result directly into
// the provided strings.Builder, avoiding extra allocations. It returns the positions
// of the components in the resulting IRI. This is useful for performance-critical code.
// The base Ref must be absolute; ResolveTo reports KindInvalidBaseIRI otherwise.
func (r *Ref) ResolveTo(relativeIRI string, target *strings.Builder) (Positions, error) {
	if !r.IsAbsolute() {
		return Positions{}, newParseError(errInvalidBaseIRI)
	}

	b := &base{IRI: r.iri, Pos: r.positions}
	output := &stringOutputBuffer{builder: target}

	pos, err := run(relativeIRI, b, false, output)
	if err != nil {
		return Positions{}, newParseError(err)
	}
	return pos, nil
}

// ResolveUncheckedTo is the panic-on-error counterpart of ResolveTo.
func (r *Ref) ResolveUncheckedTo(relativeIRI string, target *strings.Builder) Positions {
	if !r.IsAbsolute() {
		panic(newParseError(errInvalidBaseIRI))
	}

	b := &base{IRI: r.iri, Pos: r.positions}
	output := &stringOutputBuffer{builder: target}

	pos, err := run(relativeIRI, b, true, output)
	if err != nil {
		panic(newParseError(err))
	}
	return pos
}

// String returns the underlying string representation of the IRI reference.
func (r *Ref) String() string {
	return r.iri
}

// IsAbsolute returns true if the IRI reference is absolute (i.e., it has a scheme).
func (r *Ref) IsAbsolute() bool {
	return r.positions.SchemeEnd != 0
}

// Scheme returns the scheme component of the IRI (e.g., "http") and a boolean
// indicating whether it was present.
func (r *Ref) Scheme() (string, bool) {
	if !r.IsAbsolute() {
		return "", false
	}
	// The scheme ends one character before the colon.
	return r.iri[:r.positions.SchemeEnd-1], true
}

// Authority returns the authority component of the IRI (e.g., "example.com:80")
// and a boolean indicating whether it was present. The leading "//" is not included.
func (r *Ref) Authority() (string, bool) {
	if r.positions.AuthorityEnd <= r.positions.SchemeEnd {
		return "", false
	}

	authorityComponent := r.iri[r.positions.SchemeEnd:r.positions.AuthorityEnd]
	return strings.TrimPrefix(authorityComponent, "//"), true
}

// Path returns the path component of the IRI. A path is always present,
// though it may be an empty string.
func (r *Ref) Path() string {
	return r.iri[r.positions.AuthorityEnd:r.positions.PathEnd]
}

// Query returns the query component of the IRI (the part after "?", without the "?")
// and a boolean indicating whether it was present.
func (r *Ref) Query() (string, bool) {
	if r.positions.PathEnd >= r.positions.QueryEnd {
		return "", false
	}
	// The query starts one character after the '?'.
	return r.iri[r.positions.PathEnd+1 : r.positions.QueryEnd], true
}

// Fragment returns the fragment component of the IRI (the part after "#", without the "#")
// and a boolean indicating whether it was present.
func (r *Ref) Fragment() (string, bool) {
	if r.positions.QueryEnd >= len(r.iri) {
		return "", false
	}
	// The fragment starts one character after the '#'.
	return r.iri[r.positions.QueryEnd+1:], true
}

// Iri represents a guaranteed absolute IRI. It embeds a Ref and provides convenience
// methods for working with IRIs that must be absolute.
type Iri struct {
	Ref
}

// ParseIri parses and validates a string, ensuring it is an absolute IRI.
// If the string is a relative reference, it returns an error.
func ParseIri(s string) (*Iri, error) {
	ref, err := ParseRef(s)
	if err != nil {
		return nil, err
	}
	return NewIriFromRef(ref)
}

// ParseIriUnchecked is the panic-on-error counterpart of ParseIri, for input
// already known to be a well-formed absolute IRI.
func ParseIriUnchecked(s string) *Iri {
	ref := ParseRefUnchecked(s)
	iri, err := NewIriFromRef(ref)
	if err != nil {
		panic(err)
	}
	return iri
}

// NewIriFromRef attempts to create an absolute Iri from an existing Ref.
// It returns an error if the provided Ref is not absolute.
func NewIriFromRef(ref *Ref) (*Iri, error) {
	if !ref.IsAbsolute() {
		return nil, newParseError(errSchemeRequired)
	}
	return &Iri{Ref: *ref}, nil
}

// Scheme returns the scheme component of the IRI. It is guaranteed to be present.
func (i *Iri) Scheme() string {
	s, _ := i.Ref.Scheme()
	return s
}

// Resolve resolves a relative IRI reference against the current Iri and returns
// a new, absolute Iri.
func (i *Iri) Resolve(relativeIRI string) (*Iri, error) {
	ref, err := i.Ref.Resolve(relativeIRI)
	if err != nil {
		return nil, err
	}
	// The result of a resolution is always absolute.
	return &Iri{Ref: *ref}, nil
}

// ResolveUnchecked is the panic-on-error counterpart of Resolve.
func (i *Iri) ResolveUnchecked(relativeIRI string) *Iri {
	ref := i.Ref.ResolveUnchecked(relativeIRI)
	return &Iri{Ref: *ref}
}

// ResolveTo resolves a relative IRI and writes the resulting absolute IRI
// to the provided strings.Builder instead of returning a new Iri.
func (i *Iri) ResolveTo(relativeIRI string, target *strings.Builder) error {
	_, err := i.Ref.ResolveTo(relativeIRI, target)
	return err
}

// ResolveUncheckedTo is the panic-on-error counterpart of ResolveTo.
func (i *Iri) ResolveUncheckedTo(relativeIRI string, target *strings.Builder) {
	i.Ref.ResolveUncheckedTo(relativeIRI, target)
}

// Relativize computes a relative IRI reference that, when resolved against the
// base IRI `i`, will result in the target IRI `abs`. This is the inverse of the
// Resolve operation.
//
// The candidate reference is verified by re-resolving it against `i` and
// comparing the result to `abs`; if it does not round-trip, Relativize falls
// back to a less compact form (absolute-path, network-path, then the full
// target IRI) rather than ever return a reference that would resolve to
// something else. It returns `ErrIriRelativize` if the target IRI's path
// contains dot-segments ("." or "..").
func (i *Iri) Relativize(abs *Iri) (*Ref, error) {
	absPath := abs.Path()
	for _, segment := range strings.Split(absPath, "/") {
		if segment == "." || segment == ".." {
			return nil, ErrIriRelativize
		}
	}

	candidate, err := i.relativizeCandidate(abs)
	if err != nil {
		// The shortest form is not a valid reference on its own (e.g. a path
		// that is just ":"). Start from the empty reference instead, so that
		// verifyRelativization falls back to the longer forms.
		candidate = &Ref{}
	}

	return i.verifyRelativization(candidate, abs)
}

// relativizeCandidate computes the shortest-form relative reference without
// verifying that it round-trips back to abs through Resolve.
func (i *Iri) relativizeCandidate(abs *Iri) (*Ref, error) {
	base := i

	if base.Scheme() != abs.Scheme() {
		return ParseRef(abs.String())
	}

	baseAuthority, hasBaseAuthority := base.Authority()
	absAuthority, hasAbsAuthority := abs.Authority()

	if hasBaseAuthority != hasAbsAuthority || (hasBaseAuthority && baseAuthority != absAuthority) {
		if !hasAbsAuthority {
			return ParseRef(abs.String())
		}
		return ParseRef(abs.String()[abs.positions.SchemeEnd:])
	}

	basePath := base.Path()
	absPath := abs.Path()

	if absPath == "" && basePath != "" {
		if !hasAbsAuthority {
			return ParseRef(abs.String())
		}
		return ParseRef(abs.String()[abs.positions.SchemeEnd:])
	}

	if basePath == absPath {
		return i.relativizeForSamePath(abs)
	}

	if !hasBaseAuthority {
		return i.relativizeForNoAuthority(abs)
	}

	return i.relativizeWithAuthority(abs)
}

// verifyRelativization re-resolves candidate against i and confirms the
// result is byte-identical to abs. If it isn't, it falls back through
// progressively less compact, but always round-tripping, forms: an
// absolute-path reference, then a network-path reference, then the full
// target IRI, which always round-trips since resolving an absolute
// reference ignores its base entirely.
func (i *Iri) verifyRelativization(candidate *Ref, abs *Iri) (*Ref, error) {
	if resolved, err := i.Resolve(candidate.String()); err == nil && resolved.String() == abs.String() {
		return candidate, nil
	}

	suffix := abs.Path()
	if query, ok := abs.Query(); ok {
		suffix += "?" + query
	}
	if fragment, ok := abs.Fragment(); ok {
		suffix += "#" + fragment
	}

	if resolved, err := i.Resolve(suffix); err == nil && resolved.String() == abs.String() {
		return ParseRef(suffix)
	}

	if absAuthority, ok := abs.Authority(); ok {
		networkPath := "//" + absAuthority + suffix
		if resolved, err := i.Resolve(networkPath); err == nil && resolved.String() == abs.String() {
			return ParseRef(networkPath)
		}
	}

	return ParseRef(abs.String())
}
