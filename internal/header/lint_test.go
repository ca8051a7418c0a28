package header

import (
	"strings"
	"testing"
)

func lint(t *testing.T, raw string) []Finding {
	t.Helper()
	desc := mustParse(t, raw)
	h, err := Generate(desc, DefaultLayout())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return Lint(desc, h)
}

func hasFinding(findings []Finding, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f.String(), substr) {
			return true
		}
	}
	return false
}

func TestLintCleanFixture(t *testing.T) {
	desc := loadFixture(t)
	h, err := Generate(desc, DefaultLayout())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if findings := Lint(desc, h); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestLintFindings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "not a uuid",
			input: `{"base_uuid": "a8e1xxxx-7f20", "services": [{"id": "0x1000"}]}`,
			want:  "is not a 128-bit uuid",
		},
		{
			name:  "sig base range",
			input: `{"base_uuid": "0000xxxx-0000-1000-8000-00805f9b34fb", "services": [{"id": "0x180f"}]}`,
			want:  "Bluetooth SIG base range",
		},
		{
			name: "collides with service",
			input: `{"base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd", "services": [{"id": "0x1000", "characteristics": [
			  {"name": "control", "id": "0x1000"}]}]}`,
			want: "also used by service",
		},
		{
			name: "collides with characteristic",
			input: `{"base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd", "services": [{"id": "0x1000", "characteristics": [
			  {"name": "control", "id": "0x1001"}, {"name": "status", "id": "0X1001"}]}]}`,
			want: `also used by characteristic "control"`,
		},
		{
			name: "duplicate name",
			input: `{"base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd", "services": [{"id": "0x1000", "characteristics": [
			  {"name": "control", "id": "0x1001"}, {"name": "control", "id": "0x1002"}]}]}`,
			want: "last entry wins",
		},
		{
			name: "identifier clash",
			input: `{"base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd", "services": [{"id": "0x1000", "characteristics": [
			  {"name": "control", "id": "0x1001"}, {"name": "Control", "id": "0x1002"}]}]}`,
			want: `identifier kCharControlUuid is also generated for characteristic "control"`,
		},
		{
			name: "bad identifier",
			input: `{"base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd", "services": [{"id": "0x1000", "characteristics": [
			  {"name": "fw version", "id": "0x1001"}]}]}`,
			want: "not a valid C++ identifier",
		},
		{
			name: "ignored services",
			input: `{"base_uuid": "a8e1xxxx-7f20-4b9e-b0c3-9f3e7c00abcd", "services": [
			  {"id": "0x1000"}, {"id": "0x2000"}, {"id": "0x3000"}]}`,
			want: "2 service(s) after the first are ignored",
		},
	}

	for _, tc := range tests {
		findings := lint(t, tc.input)
		if !hasFinding(findings, tc.want) {
			t.Fatalf("%s: expected finding %q, got %v", tc.name, tc.want, findings)
		}
	}
}
