package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"protogen/internal/config"
	"protogen/internal/header"
	"protogen/internal/protocol"
)

// Build loads the configured descriptor and generates its header in memory.
func Build(cfg config.Config) (*protocol.Description, *header.Header, error) {
	input := cfg.InputPath()
	config.Debugf("loading descriptor %s", input)

	desc, err := protocol.Load(input)
	if err != nil {
		return nil, nil, err
	}

	h, err := header.Generate(desc, cfg.Layout)
	if err != nil {
		return nil, nil, err
	}

	config.Debugf("service %s -> %s", desc.Services[0].ID, h.ServiceUUID)
	for _, c := range h.Constants {
		config.Debugf("characteristic %s -> %s (%s)", c.Name, c.UUID, c.Identifier)
	}
	for _, name := range h.Overwritten {
		config.Debugf("characteristic %s listed again, keeping the later id", name)
	}
	return desc, h, nil
}

// Generate writes the header for the configured descriptor.
func Generate(w io.Writer, cfg config.Config) error {
	_, h, err := Build(cfg)
	if err != nil {
		return err
	}

	out := cfg.OutputPath()
	n, err := header.WriteFile(out, h)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Wrote %s %s\n",
		successStyle.Render("[gen]"),
		out,
		mutedStyle.Render("("+humanize.Bytes(uint64(n))+")"))
	return nil
}

// Check fails with protocol.ErrOutOfDate when the output on disk differs from
// what Generate would write. Nothing is written.
func Check(w io.Writer, cfg config.Config) error {
	_, h, err := Build(cfg)
	if err != nil {
		return err
	}

	out := cfg.OutputPath()
	ok, err := header.UpToDate(out, h)
	if err != nil {
		return err
	}
	if !ok {
		return &protocol.Error{
			Kind:  protocol.ErrOutOfDate,
			Stage: "check",
			Err:   fmt.Errorf("%s differs from %s; run protogen generate", out, cfg.InputPath()),
		}
	}

	fmt.Fprintf(w, "%s %s is up to date\n", successStyle.Render("[check]"), out)
	return nil
}

// Expand prints a single expanded UUID.
func Expand(w io.Writer, base, hexID string) error {
	uuid, err := protocol.ExpandUUID(base, hexID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, uuid)
	return nil
}
