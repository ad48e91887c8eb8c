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
	"net"
	"strings"
)

const (
	// ipvFutureParts is the number of parts expected in an IPvFuture literal
	// (e.g., "v1.abc"), separated by a dot.
	ipvFutureParts = 2
)

// parseUserinfo handles the userinfo part of the authority.
func (p *iriParser) parseUserinfo(userinfo string, offset int) error {
	if userinfo == "" {
		return nil
	}
	if !p.unchecked {
		if err := validateBidiComponent(userinfo); err != nil {
			return err
		}
	}

	// Use a temporary buffer to ensure parsing is transactional.
	var tempBuffer strings.Builder
	tempParser := &iriParser{
		input:     newParserInput(userinfo),
		output:    &stringOutputBuffer{builder: &tempBuffer},
		unchecked: p.unchecked,
		posOffset: offset,
	}

	for {
		r, ok := tempParser.input.next()
		if !ok {
			break
		}
		if err := tempParser.readURLCodepointOrEchar(r, func(c rune) bool {
			return isIUnreservedOrSubDelims(c) || c == ':'
		}); err != nil {
			return err
		}
	}

	p.output.writeString(tempBuffer.String())
	p.output.writeRune('@')
	return nil
}

// validateHost checks the host component for structural validity (IP literal format, Bidi rules).
func (p *iriParser) validateHost(host string, offset int) error {
	if strings.HasPrefix(host, "[") {
		if !strings.HasSuffix(host, "]") {
			return &kindError{kind: KindInvalidIPLiteral, pos: offset, message: "Invalid host IP: unterminated IP literal", details: host}
		}
		ipLiteral := host[1 : len(host)-1]
		if err := p.validateIPLiteral(ipLiteral, offset+1); err != nil {
			return err
		}
	} else if err := validateBidiHost(host); err != nil {
		return err
	}
	return nil
}

// parseHost handles the host part of the authority.
func (p *iriParser) parseHost(host string, offset int) error {
	if host == "" {
		return nil
	}
	if !p.unchecked {
		if err := p.validateHost(host, offset); err != nil {
			return err
		}
	}

	var tempBuffer strings.Builder
	tempParser := &iriParser{
		input:     newParserInput(host),
		output:    &stringOutputBuffer{builder: &tempBuffer},
		unchecked: p.unchecked,
		posOffset: offset,
	}

	// This is the correct "consume-then-process" loop.
	for {
		r, ok := tempParser.input.next()
		if !ok {
			break
		}

		if r == '%' {
			// The '%' is now consumed. readEchar can correctly read the next two digits.
			if err := tempParser.readEchar(); err != nil {
				return err
			}
		} else {
			// Check against the allowed character set for a host.
			// The host component allows different characters depending on whether it's an
			// IP literal or a registered name. We must check for all valid possibilities.
			isIPLiteralChar := r == '[' || r == ']' || r == ':'
			if !p.unchecked && !isIUnreservedOrSubDelims(r) && !isIPLiteralChar {
				return &kindError{kind: KindInvalidHostCharacter, pos: tempParser.pos() - 1, message: "Invalid character in host", char: r}
			}
			tempParser.output.writeRune(r)
		}
	}

	p.output.writeString(tempBuffer.String())
	return nil
}

// parsePort handles the port part of the authority.
func (p *iriParser) parsePort(port string, offset int) error {
	if port == "" {
		return nil
	}
	if !p.unchecked {
		for i, r := range port {
			if !isASCIIDigit(r) {
				return &kindError{kind: KindInvalidPortCharacter, pos: offset + i, message: "Invalid port character", char: r}
			}
		}
	}
	p.output.writeRune(':')
	p.output.writeString(port)
	return nil
}

// parseAuthority is a method on the iriParser that consumes and validates
// the authority component from the input stream.
func (p *iriParser) parseAuthority() error {
	authorityAbsStart := p.pos()
	authorityStr := p.input.asStr()
	end := len(authorityStr)
	for i, r := range authorityStr {
		if r == '/' || r == '?' || r == '#' {
			end = i
			break
		}
	}
	authorityPart := authorityStr[:end]

	userinfo, host, port := splitAuthority(authorityPart)

	hostOffset := authorityAbsStart
	if userinfo != "" {
		hostOffset += len(userinfo) + 1 // +1 for '@'.
	}
	portOffset := hostOffset + len(host) + 1 // +1 for ':'.

	if err := p.parseUserinfo(userinfo, authorityAbsStart); err != nil {
		return err
	}
	if err := p.parseHost(host, hostOffset); err != nil {
		return err
	}
	if err := p.parsePort(port, portOffset); err != nil {
		return err
	}

	p.input.reset(authorityStr[end:])
	p.posOffset = authorityAbsStart + end
	p.outputPositions.AuthorityEnd = p.output.len()

	return nil
}

// validateIPLiteral checks if a string inside brackets is a valid IPv6 or IPvFuture address.
// offset is the byte position of ipLiteral's first character in the original input.
func (p *iriParser) validateIPLiteral(ipLiteral string, offset int) error {
	if strings.HasPrefix(ipLiteral, "v") || strings.HasPrefix(ipLiteral, "V") {
		return p.validateIPVFuture(ipLiteral, offset)
	}
	if net.ParseIP(ipLiteral) == nil {
		return &kindError{kind: KindInvalidIPLiteral, pos: offset, message: "Invalid host IP", details: ipLiteral}
	}
	return nil
}

// validateIPVFuture validates an IPvFuture literal (e.g., "v1.something").
func (p *iriParser) validateIPVFuture(ip string, offset int) error {
	parts := strings.SplitN(ip[1:], ".", ipvFutureParts)
	if len(parts) != ipvFutureParts {
		return &kindError{kind: KindInvalidIPLiteral, pos: offset, message: "Invalid IPvFuture format: no dot separator", details: ip}
	}
	version, address := parts[0], parts[1]
	if version == "" {
		return &kindError{kind: KindInvalidIPLiteral, pos: offset + 1, message: "Invalid IPvFuture: missing version", details: ip}
	}
	for _, r := range version {
		if !isASCIIHexDigit(r) {
			return &kindError{kind: KindInvalidIPLiteral, pos: offset + 1, message: "Invalid IPvFuture version char", char: r}
		}
	}
	if address == "" {
		return &kindError{kind: KindInvalidIPLiteral, pos: offset, message: "Invalid IPvFuture: empty address part", details: ip}
	}
	for _, r := range address {
		if !isUnreservedOrSubDelims(r) && r != ':' {
			return &kindError{kind: KindInvalidIPLiteral, pos: offset, message: "Invalid IPvFuture address char", char: r}
		}
	}
	return nil
}

// splitAuthority is the single, stateless utility function that parses an authority
// string into its userinfo, host, and port components.
func splitAuthority(authority string) (string, string, string) {
	var userinfo, host, port string

	endUserinfo := strings.LastIndex(authority, "@")
	hostport := authority
	if endUserinfo != -1 {
		userinfo = authority[:endUserinfo]
		hostport = authority[endUserinfo+1:]
	}

	if strings.HasPrefix(hostport, "[") {
		endBracket := strings.LastIndex(hostport, "]")
		if endBracket == -1 {
			host = hostport
			return userinfo, host, port
		}
		host = hostport[:endBracket+1]
		if len(hostport) > endBracket+1 && hostport[endBracket+1] == ':' {
			port = hostport[endBracket+2:]
		}
		return userinfo, host, port
	}

	endHost := strings.LastIndex(hostport, ":")
	if endHost != -1 {
		host = hostport[:endHost]
		port = hostport[endHost+1:]
	} else {
		host = hostport
	}
	return userinfo, host, port
}
