package cli

import (
	"errors"
	"os"

	"protogen/internal/commands"
	"protogen/internal/config"
	"protogen/internal/logging"
	"protogen/internal/protocol"
	"protogen/internal/tui"
)

// CLI is the root command structure for protogen.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose debug output"`
	Config  string `short:"c" placeholder:"FILE" help:"Config file (default: <root>/protogen.toml if present)"`
	Root    string `default:"." placeholder:"DIR" help:"Project root that input and output paths are relative to"`

	// Default command - generate
	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate the protocol header (default)"`

	Validate ValidateCmd `cmd:"" help:"Check a descriptor and report lint findings without writing"`
	Check    CheckCmd    `cmd:"" help:"Fail if the generated header on disk is out of date"`
	Expand   ExpandCmd   `cmd:"" help:"Expand one hex id into a base UUID"`
	Inspect  InspectCmd  `cmd:"" help:"Browse the generated constants interactively"`
}

// load sets up logging and resolves the run config.
func (c *CLI) load(input, output string) (config.Config, error) {
	config.Verbose = c.Verbose
	logging.ConfigureRuntime(config.Verbose)

	cfg, err := config.Load(c.Root, c.Config)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.WithInput(input).WithOutput(output), nil
}

// --- Generate ---

type GenerateCmd struct {
	Input  string `short:"i" placeholder:"FILE" help:"Protocol descriptor (default: alti-protocol/protocol.json)"`
	Output string `short:"o" placeholder:"FILE" help:"Header to write (default: src/include/bluetooth_protocol.h)"`
}

func (c *GenerateCmd) Run(globals *CLI) error {
	cfg, err := globals.load(c.Input, c.Output)
	if err != nil {
		return err
	}
	return commands.Generate(os.Stdout, cfg)
}

// --- Validate ---

type ValidateCmd struct {
	Input  string `short:"i" placeholder:"FILE" help:"Protocol descriptor"`
	Strict bool   `help:"Treat lint findings as errors"`
}

func (c *ValidateCmd) Run(globals *CLI) error {
	cfg, err := globals.load(c.Input, "")
	if err != nil {
		return err
	}
	return commands.Validate(os.Stdout, cfg, c.Strict)
}

// --- Check ---

type CheckCmd struct {
	Input  string `short:"i" placeholder:"FILE" help:"Protocol descriptor"`
	Output string `short:"o" placeholder:"FILE" help:"Generated header to compare against"`
}

func (c *CheckCmd) Run(globals *CLI) error {
	cfg, err := globals.load(c.Input, c.Output)
	if err != nil {
		return err
	}
	return commands.Check(os.Stdout, cfg)
}

// --- Expand ---

type ExpandCmd struct {
	Base string `arg:"" help:"Base UUID containing the xxxx placeholder"`
	ID   string `arg:"" help:"Hex id, e.g. 0x1001"`
}

func (c *ExpandCmd) Run(globals *CLI) error {
	config.Verbose = globals.Verbose
	logging.ConfigureRuntime(config.Verbose)
	return commands.Expand(os.Stdout, c.Base, c.ID)
}

// --- Inspect ---

type InspectCmd struct {
	Input string `short:"i" placeholder:"FILE" help:"Protocol descriptor"`
}

func (c *InspectCmd) Run(globals *CLI) error {
	cfg, err := globals.load(c.Input, "")
	if err != nil {
		return err
	}
	desc, h, err := commands.Build(cfg)
	if err != nil {
		return err
	}
	return tui.Run(cfg.Input, desc, h)
}

// Exit codes, one per failure kind.
const (
	ExitOK = iota
	ExitFailure
	ExitInputNotFound
	ExitMalformedInput
	ExitInvalidProtocol
	ExitOutputWrite
	ExitOutOfDate
	ExitConfig
)

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, protocol.ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, protocol.ErrMalformedInput):
		return ExitMalformedInput
	case errors.Is(err, protocol.ErrInvalidProtocol):
		return ExitInvalidProtocol
	case errors.Is(err, protocol.ErrOutputWrite):
		return ExitOutputWrite
	case errors.Is(err, protocol.ErrOutOfDate):
		return ExitOutOfDate
	case errors.Is(err, config.ErrConfig):
		return ExitConfig
	default:
		return ExitFailure
	}
}
