package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultVersion is used when the descriptor does not carry a version.
const DefaultVersion = "0.0.0"

// Description is a parsed protocol descriptor (protocol.json).
type Description struct {
	BaseUUID string    `json:"base_uuid"`
	Version  *string   `json:"version,omitempty"` // nil when the key is absent
	Services []Service `json:"services"`
}

// Service is one GATT service entry. Only the first service of a descriptor
// is ever rendered.
type Service struct {
	ID              string           `json:"id"`
	Name            string           `json:"name,omitempty"`
	Characteristics []Characteristic `json:"characteristics"`
}

// Characteristic is a named characteristic with a short hex id.
type Characteristic struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// rawDescription defers decoding of services so that a broken entry after the
// primary one cannot fail the load.
type rawDescription struct {
	BaseUUID string            `json:"base_uuid"`
	Version  *string           `json:"version"`
	Services []json.RawMessage `json:"services"`
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ErrInputNotFound, Stage: "load", Value: path, Err: err}
	}
	return Parse(data)
}

// Parse decodes a descriptor and checks the fields the generator needs.
func Parse(data []byte) (*Description, error) {
	var raw rawDescription
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, malformed("parse", "", "", err)
	}

	desc := &Description{
		BaseUUID: raw.BaseUUID,
		Version:  raw.Version,
		Services: make([]Service, 0, len(raw.Services)),
	}
	for i, msg := range raw.Services {
		var svc Service
		if err := json.Unmarshal(msg, &svc); err != nil {
			if i == 0 {
				return nil, malformed("parse", "services[0]", "", err)
			}
			// Ignored services keep their slot so lint can still count them.
			svc = Service{}
		}
		desc.Services = append(desc.Services, svc)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

// Validate checks the required fields. Services after the first are not
// inspected since they never affect output.
func (d *Description) Validate() error {
	if d.BaseUUID == "" {
		return invalid("base_uuid", errors.New("base_uuid is required"))
	}
	if len(d.Services) == 0 {
		return invalid("services", errors.New("at least one service is required"))
	}
	svc := d.Services[0]
	if svc.ID == "" {
		return invalid("services[0].id", errors.New("service id is required"))
	}
	for i, c := range svc.Characteristics {
		if c.Name == "" {
			return invalid(CharacteristicField(i, "name"), errors.New("characteristic name is required"))
		}
		if c.ID == "" {
			return invalid(CharacteristicField(i, "id"), errors.New("characteristic id is required"))
		}
	}
	return nil
}

// VersionOrDefault returns the descriptor version, or DefaultVersion when the
// key is absent. An explicit empty string is kept.
func (d *Description) VersionOrDefault() string {
	if d.Version == nil {
		return DefaultVersion
	}
	return *d.Version
}

// CharacteristicField is the field path of a characteristic attribute of the
// primary service.
func CharacteristicField(index int, attr string) string {
	return fmt.Sprintf("services[0].characteristics[%d].%s", index, attr)
}
