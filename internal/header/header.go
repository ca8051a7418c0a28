// Package header renders a protocol description into the C++ header shared by
// the firmware, and writes it to disk.
package header

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"protogen/internal/protocol"
)

// Layout controls the fixed parts of the generated header.
type Layout struct {
	Source     string // descriptor path named in the provenance comment
	Include    string // platform SDK header, including <> or ""
	Namespace  string
	CharPrefix string
	CharSuffix string
}

// DefaultLayout reproduces the header the firmware has always included.
func DefaultLayout() Layout {
	return Layout{
		Source:     "alti-protocol/protocol.json",
		Include:    "<Arduino.h>",
		Namespace:  "BtProtocol",
		CharPrefix: "kChar",
		CharSuffix: "Uuid",
	}
}

// Constant is one named UUID emitted for a characteristic.
type Constant struct {
	Name       string // characteristic name as written in the descriptor
	Identifier string // C++ identifier, e.g. kCharControlUuid
	UUID       string
}

// Header is a generated header.
type Header struct {
	Version     string
	BaseUUID    string
	ServiceUUID string
	Constants   []Constant
	// Overwritten lists characteristic names that appeared more than once;
	// the later entry's UUID won.
	Overwritten []string

	lines []string
}

// Generate expands the primary service of desc and renders the header. It does
// no I/O and is deterministic for a given description and layout.
func Generate(desc *protocol.Description, layout Layout) (*Header, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	svc := desc.Services[0]

	serviceUUID, err := protocol.ExpandUUID(desc.BaseUUID, svc.ID)
	if err != nil {
		return nil, protocol.WithField(err, expandField(err, "services[0].id"))
	}

	h := &Header{
		Version:     desc.VersionOrDefault(),
		BaseUUID:    desc.BaseUUID,
		ServiceUUID: serviceUUID,
	}

	// Ordered by first appearance; a repeated name replaces the value in place.
	index := make(map[string]int, len(svc.Characteristics))
	for i, c := range svc.Characteristics {
		uuid, err := protocol.ExpandUUID(desc.BaseUUID, c.ID)
		if err != nil {
			return nil, protocol.WithField(err, expandField(err, protocol.CharacteristicField(i, "id")))
		}
		if pos, ok := index[c.Name]; ok {
			h.Constants[pos].UUID = uuid
			h.Overwritten = append(h.Overwritten, c.Name)
			continue
		}
		index[c.Name] = len(h.Constants)
		h.Constants = append(h.Constants, Constant{
			Name:       c.Name,
			Identifier: layout.Identifier(c.Name),
			UUID:       uuid,
		})
	}

	h.lines = h.render(layout)
	return h, nil
}

// expandField keeps the base_uuid field for placeholder errors and uses the
// id path otherwise.
func expandField(err error, idField string) string {
	var perr *protocol.Error
	if errors.As(err, &perr) && perr.Field == "base_uuid" {
		return "base_uuid"
	}
	return idField
}

// Identifier builds the constant name for a characteristic: prefix, the name
// with its first letter upper-cased, suffix. The name is not sanitized.
func (l Layout) Identifier(name string) string {
	return l.CharPrefix + capitalize(name) + l.CharSuffix
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func (h *Header) render(layout Layout) []string {
	lines := []string{
		fmt.Sprintf("// Auto-generated by protogen from %s", layout.Source),
		"#pragma once",
		"#include " + layout.Include,
		"",
		fmt.Sprintf("namespace %s {", layout.Namespace),
		constLine("kVersion", h.Version),
		constLine("kBaseUuid", h.BaseUUID),
		constLine("kServiceMainUuid", h.ServiceUUID),
	}
	for _, c := range h.Constants {
		lines = append(lines, constLine(c.Identifier, c.UUID))
	}
	return append(lines, fmt.Sprintf("}  // namespace %s", layout.Namespace), "")
}

func constLine(name, value string) string {
	return fmt.Sprintf("constexpr const char* %s = \"%s\";", name, value)
}

// Lines returns the header lines. The last element is empty so that the
// joined text ends in a newline.
func (h *Header) Lines() []string {
	return append([]string(nil), h.lines...)
}

// Text returns the full header text.
func (h *Header) Text() string {
	return strings.Join(h.lines, "\n")
}

// Bytes returns the header as written to disk.
func (h *Header) Bytes() []byte {
	return []byte(h.Text())
}
