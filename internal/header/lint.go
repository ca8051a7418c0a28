package header

import (
	"fmt"
	"regexp"

	"tinygo.org/x/bluetooth"

	"protogen/internal/protocol"
)

// Finding is a non-fatal problem in a descriptor that still generated.
type Finding struct {
	Field   string
	Message string
}

func (f Finding) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

var cppIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Lint inspects a description and the header generated from it.
func Lint(desc *protocol.Description, h *Header) []Finding {
	var findings []Finding

	findings = append(findings, checkUUID("services[0].id", h.ServiceUUID)...)

	seen := map[string]string{h.ServiceUUID: "service"}
	identifiers := make(map[string]string, len(h.Constants))
	for _, c := range h.Constants {
		field := fmt.Sprintf("characteristic %q", c.Name)
		findings = append(findings, checkUUID(field, c.UUID)...)

		if !cppIdentifier.MatchString(c.Identifier) {
			findings = append(findings, Finding{
				Field:   field,
				Message: fmt.Sprintf("%q is not a valid C++ identifier", c.Identifier),
			})
		}
		if other, ok := identifiers[c.Identifier]; ok {
			findings = append(findings, Finding{
				Field:   field,
				Message: fmt.Sprintf("identifier %s is also generated for characteristic %q", c.Identifier, other),
			})
		} else {
			identifiers[c.Identifier] = c.Name
		}
		if owner, ok := seen[c.UUID]; ok {
			findings = append(findings, Finding{
				Field:   field,
				Message: fmt.Sprintf("uuid %s is also used by %s", c.UUID, owner),
			})
			continue
		}
		seen[c.UUID] = field
	}

	for _, name := range h.Overwritten {
		findings = append(findings, Finding{
			Field:   fmt.Sprintf("characteristic %q", name),
			Message: "name appears more than once; the last entry wins",
		})
	}

	if extra := len(desc.Services) - 1; extra > 0 {
		findings = append(findings, Finding{
			Field:   "services",
			Message: fmt.Sprintf("%d service(s) after the first are ignored", extra),
		})
	}
	return findings
}

func checkUUID(field, s string) []Finding {
	uuid, err := bluetooth.ParseUUID(s)
	if err != nil {
		return []Finding{{Field: field, Message: fmt.Sprintf("%s is not a 128-bit uuid: %v", s, err)}}
	}
	if uuid.Is16Bit() {
		return []Finding{{Field: field, Message: fmt.Sprintf("%s is in the Bluetooth SIG base range", s)}}
	}
	return nil
}
