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

// removeDotSegments implements the "Remove Dot Segments" algorithm from
// RFC 3986, Section 5.2.4, normalizing a path by resolving "." and ".."
// segments. Segments already written to the output are kept as a stack so
// that a ".." can pop the most recent one back off.
func removeDotSegments(input string) string {
	var output []string
	in := input

	for len(in) > 0 {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../") || in == "/..":
			in = popLastSegment(in, &output)
		case in == "." || in == "..":
			in = ""
		default:
			var segment string
			segment, in = firstPathSegment(in)
			output = append(output, segment)
		}
	}

	return strings.Join(output, "")
}

// popLastSegment implements rule 2C of RFC 3986, Section 5.2.4: it drops a
// leading "/../" or "/.." from in, removes the most recently written
// segment from output, and reports the remaining input.
func popLastSegment(in string, output *[]string) string {
	rest := "/"
	if len(in) > len("/..") {
		rest += in[len("/../"):]
	}

	segs := *output
	if len(segs) == 0 {
		return rest
	}

	last := segs[len(segs)-1]
	segs = segs[:len(segs)-1]
	*output = segs

	if len(segs) == 0 && !strings.HasPrefix(last, "/") {
		rest = strings.TrimPrefix(rest, "/")
	}
	return rest
}

// firstPathSegment implements rule 2E of RFC 3986, Section 5.2.4: it splits
// off the first path segment of in, including its leading slash if it has
// one, and returns it along with the remaining input.
func firstPathSegment(in string) (string, string) {
	if strings.HasPrefix(in, "/") {
		if next := strings.Index(in[1:], "/"); next != -1 {
			return in[:next+1], in[next+1:]
		}
		return in, ""
	}

	if next := strings.Index(in, "/"); next != -1 {
		return in[:next], in[next:]
	}
	return in, ""
}

// resolvePath resolves a relative path against a base path according to
// RFC 3986, Section 5.2.2, merging the base path's directory with the
// relative reference path before normalizing.
func resolvePath(basePath, relPath string) string {
	dirEnd := strings.LastIndex(basePath, "/")
	if dirEnd == -1 {
		return removeDotSegments(relPath)
	}
	return removeDotSegments(basePath[:dirEnd+1] + relPath)
}
