package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"protogen/internal/config"
	"protogen/internal/protocol"
	"protogen/internal/testutil/testlog"
)

const sampleDescriptor = `{
  "version": "1.0.0",
  "base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd",
  "services": [{"id": "0x1000", "characteristics": [
    {"name": "control", "id": "0x1001"},
    {"name": "status", "id": "0x1002"}
  ]}]
}`

// setupProject lays out root/alti-protocol/protocol.json and root/src/include.
func setupProject(t *testing.T, descriptor string) config.Config {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"alti-protocol", filepath.Join("src", "include")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, config.DefaultInput), []byte(descriptor), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	cfg, err := config.Load(root, "")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestGenerateWritesHeader(t *testing.T) {
	testlog.Start(t)
	cfg := setupProject(t, sampleDescriptor)

	var out bytes.Buffer
	if err := Generate(&out, cfg); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out.String(), cfg.OutputPath()) {
		t.Fatalf("expected confirmation naming %s, got %q", cfg.OutputPath(), out.String())
	}

	data, err := os.ReadFile(cfg.OutputPath())
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"// Auto-generated by protogen from alti-protocol/protocol.json\n",
		`constexpr const char* kServiceMainUuid = "a8e11000-7f20-4b9e-b0c3-9f3e7c00abcd";`,
		`constexpr const char* kCharStatusUuid = "a8e11002-7f20-4b9e-b0c3-9f3e7c00abcd";`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in header:\n%s", want, text)
		}
	}
}

func TestGenerateFailureLeavesPreviousOutput(t *testing.T) {
	testlog.Start(t)
	cfg := setupProject(t, sampleDescriptor)
	if err := Generate(&bytes.Buffer{}, cfg); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	before, err := os.ReadFile(cfg.OutputPath())
	if err != nil {
		t.Fatalf("read header: %v", err)
	}

	if err := os.WriteFile(cfg.InputPath(), []byte(`{"base_uuid": "a8e1xxxx`), 0o644); err != nil {
		t.Fatalf("corrupt descriptor: %v", err)
	}
	var out bytes.Buffer
	err = Generate(&out, cfg)
	if !errors.Is(err, protocol.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no confirmation on failure, got %q", out.String())
	}

	after, err := os.ReadFile(cfg.OutputPath())
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("failed run modified the previous header")
	}
}

func TestGenerateErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) config.Config
		kind  error
	}{
		{
			name: "missing input",
			setup: func(t *testing.T) config.Config {
				cfg := setupProject(t, sampleDescriptor)
				return cfg.WithInput("does/not/exist.json")
			},
			kind: protocol.ErrInputNotFound,
		},
		{
			name: "empty services",
			setup: func(t *testing.T) config.Config {
				return setupProject(t, `{"base_uuid": "xxxx", "services": []}`)
			},
			kind: protocol.ErrInvalidProtocol,
		},
		{
			name: "bad id",
			setup: func(t *testing.T) config.Config {
				return setupProject(t, `{"base_uuid": "xxxx", "services": [{"id": "0x10000"}]}`)
			},
			kind: protocol.ErrMalformedInput,
		},
		{
			name: "missing output dir",
			setup: func(t *testing.T) config.Config {
				cfg := setupProject(t, sampleDescriptor)
				return cfg.WithOutput("gen/include/out.h")
			},
			kind: protocol.ErrOutputWrite,
		},
	}
	for _, tc := range tests {
		err := Generate(&bytes.Buffer{}, tc.setup(t))
		if !errors.Is(err, tc.kind) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.kind, err)
		}
	}
}

func TestCheck(t *testing.T) {
	cfg := setupProject(t, sampleDescriptor)

	err := Check(&bytes.Buffer{}, cfg)
	if !errors.Is(err, protocol.ErrOutOfDate) {
		t.Fatalf("expected out of date before generating, got %v", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath()); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("check must not write the header")
	}

	if err := Generate(&bytes.Buffer{}, cfg); err != nil {
		t.Fatalf("generate: %v", err)
	}
	var out bytes.Buffer
	if err := Check(&out, cfg); err != nil {
		t.Fatalf("check after generate: %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Fatalf("unexpected check output: %q", out.String())
	}

	if err := os.WriteFile(cfg.InputPath(), []byte(strings.Replace(sampleDescriptor, "1.0.0", "1.1.0", 1)), 0o644); err != nil {
		t.Fatalf("update descriptor: %v", err)
	}
	if err := Check(&bytes.Buffer{}, cfg); !errors.Is(err, protocol.ErrOutOfDate) {
		t.Fatalf("expected out of date after descriptor change, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := setupProject(t, sampleDescriptor)
	var out bytes.Buffer
	if err := Validate(&out, cfg, true); err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, want := range []string{"a8e11000-7f20-4b9e-b0c3-9f3e7c00abcd", "1.0.0"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in %q", want, out.String())
		}
	}
	if _, err := os.Stat(cfg.OutputPath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("validate must not write the header")
	}
}

func TestValidateStrictFailsOnFindings(t *testing.T) {
	cfg := setupProject(t, `{"base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd", "services": [
  {"id": "0x1000", "characteristics": [{"name": "a", "id": "0x1000"}]},
  {"id": "0x2000"}
]}`)

	var out bytes.Buffer
	if err := Validate(&out, cfg, false); err != nil {
		t.Fatalf("non-strict validate: %v", err)
	}
	if !strings.Contains(out.String(), "also used by service") {
		t.Fatalf("expected collision warning, got %q", out.String())
	}
	if err := Validate(&bytes.Buffer{}, cfg, true); !errors.Is(err, protocol.ErrInvalidProtocol) {
		t.Fatalf("expected strict validate to fail, got %v", err)
	}
}

func TestExpand(t *testing.T) {
	var out bytes.Buffer
	if err := Expand(&out, "0000xxxx-0000-1000-8000-00805f9b34fb", "0x1"); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out.String() != "00000001-0000-1000-8000-00805f9b34fb\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if err := Expand(&bytes.Buffer{}, "no-placeholder", "0x1"); !errors.Is(err, protocol.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}
