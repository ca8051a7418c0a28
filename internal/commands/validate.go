package commands

import (
	"fmt"
	"io"

	"protogen/internal/config"
	"protogen/internal/header"
	"protogen/internal/protocol"
)

// Validate loads and generates the header in memory, prints a summary and any
// lint findings. With strict set, findings fail the run.
func Validate(w io.Writer, cfg config.Config, strict bool) error {
	desc, h, err := Build(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s\n", successStyle.Render("[ok]"), cfg.InputPath())
	printField(w, "Version", h.Version)
	printField(w, "Base UUID", h.BaseUUID)
	printField(w, "Service UUID", h.ServiceUUID)
	printField(w, "Characteristics", fmt.Sprintf("%d", len(h.Constants)))

	findings := header.Lint(desc, h)
	if len(findings) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	for _, f := range findings {
		fmt.Fprintf(w, "%s %s\n", warningStyle.Render("[warn]"), f)
	}
	if strict {
		return &protocol.Error{
			Kind:  protocol.ErrInvalidProtocol,
			Stage: "lint",
			Err:   fmt.Errorf("%d finding(s)", len(findings)),
		}
	}
	return nil
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintln(w, labelStyle.Render(label+":")+" "+value)
}
