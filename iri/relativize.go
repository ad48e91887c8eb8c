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

import "strings"

// dirSegments splits a directory path (expected to begin and end with "/",
// e.g. "/a/b/") into its named segments. The root directory "/" has none.
func dirSegments(dir string) []string {
	trimmed := strings.Trim(dir, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// pathSegments splits an absolute path ("/a/b" or "/a/b/") into segments
// after its leading slash. Unlike dirSegments it keeps a trailing empty
// segment when the path ends in "/", which callers rely on to reconstruct
// that trailing slash via strings.Join.
func pathSegments(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// commonPrefixLen returns how many leading elements a and b share.
func commonPrefixLen(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// lastSegment returns the portion of path after its final "/", or path
// itself if it has none.
func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}

// relativizeWithAuthority handles the most complex case where both IRIs have
// an authority, and paths need to be compared.
func (i *Iri) relativizeWithAuthority(abs *Iri) (*Ref, error) {
	basePath := i.Path()
	if basePath == "" {
		basePath = "/" // RFC 3986: an absent path is equivalent to "/" for authority IRIs.
	}
	targetPath := abs.Path()
	if targetPath == "" {
		targetPath = "/"
	}

	dir := basePath
	if slash := strings.LastIndex(dir, "/"); slash > -1 {
		dir = dir[:slash+1]
	}

	baseSegs := dirSegments(dir)
	targetSegs := pathSegments(targetPath)
	common := commonPrefixLen(baseSegs, targetSegs)

	var b strings.Builder
	for n := common; n < len(baseSegs); n++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))
	relPath := b.String()

	// An empty result means the target sits in the base's own directory. If
	// that directory is itself the target (target path ends in "/"), "."
	// is the correct reference rather than an empty one.
	if relPath == "" && strings.HasSuffix(targetPath, "/") {
		return buildRelativeRef(".", abs)
	}

	return buildRelativeRef(relPath, abs)
}

// buildRelativeRef constructs the final relative reference string from a relative path
// and the query/fragment parts of the absolute target IRI.
func buildRelativeRef(relPath string, abs *Iri) (*Ref, error) {
	s := relPath
	if query, ok := abs.Query(); ok {
		s += "?" + query
	}
	if fragment, ok := abs.Fragment(); ok {
		s += "#" + fragment
	}
	return ParseRef(s)
}

// needsDotSlashPrefix reports whether relPath, emitted bare, would have its
// first segment misread as a scheme (RFC 3986, Section 4.2: a colon before
// the first slash makes a relative-path reference ambiguous with a URI that
// carries a scheme).
func needsDotSlashPrefix(relPath string) bool {
	if strings.HasPrefix(relPath, ".") || strings.HasPrefix(relPath, "/") {
		return false
	}
	colon := strings.Index(relPath, ":")
	if colon == -1 {
		return false
	}
	slash := strings.Index(relPath, "/")
	return slash == -1 || colon < slash
}

// relativizeForNoAuthority handles relativization when both IRIs lack an authority part.
func (i *Iri) relativizeForNoAuthority(abs *Iri) (*Ref, error) {
	basePath := i.Path()
	absPath := abs.Path()

	baseSegs := strings.Split(basePath, "/")
	baseDirSegs := baseSegs[:len(baseSegs)-1] // drop the base's own last ("file") segment
	absSegs := strings.Split(absPath, "/")

	common := commonPrefixLen(baseDirSegs, absSegs)

	var b strings.Builder
	for n := common; n < len(baseDirSegs); n++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(absSegs[common:], "/"))
	relPath := b.String()

	if relPath == "" && basePath != absPath {
		relPath = "."
	}
	if needsDotSlashPrefix(relPath) {
		relPath = "./" + relPath
	}

	return buildRelativeRef(relPath, abs)
}

// relativizeForSamePathWithEmptyTargetQuery handles a specific edge case where
// paths match, but the target has no query while the base does.
func (i *Iri) relativizeForSamePathWithEmptyTargetQuery(abs *Iri) (*Ref, error) {
	if _, hasAuthority := abs.Authority(); !hasAuthority {
		// No authority means a bare relative path would be read against the
		// wrong base structure entirely; only the full IRI is unambiguous.
		return ParseRef(abs.String())
	}

	absPath := abs.Path()
	if absPath == "" {
		return ParseRef(abs.String()[abs.positions.SchemeEnd:])
	}

	relPath := lastSegment(absPath)
	if relPath == "" {
		relPath = "."
	}
	return buildRelativeRef(relPath, abs)
}

// relativizeForSamePath handles relativization when base and target paths are identical.
func (i *Iri) relativizeForSamePath(abs *Iri) (*Ref, error) {
	baseQuery, hasBaseQuery := i.Query()
	absQuery, hasAbsQuery := abs.Query()
	absFragment, hasAbsFragment := abs.Fragment()

	switch {
	case hasBaseQuery == hasAbsQuery && baseQuery == absQuery:
		if hasAbsFragment {
			return ParseRef("#" + absFragment)
		}
		return ParseRef("")
	case !hasAbsQuery && hasBaseQuery:
		return i.relativizeForSamePathWithEmptyTargetQuery(abs)
	default:
		return ParseRef(abs.String()[abs.positions.PathEnd:])
	}
}
