package share

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/monakit/monakit/internal/logger"
	"github.com/monakit/monakit/internal/mindmap"
)

const sample = "mindmap\n  root((Go (lang) Tour))\n    Types\n      Structs\n        Embedding <T> & co\n"

func TestEncodeRoundtrip(t *testing.T) {
	inputs := []string{
		sample,
		"",
		"    Branch (icon) only",
		"mindmap\n  root((知识卡片))\n    分支\n      子分支\n        叶子",
	}

	enc := DefaultEncoder()
	for _, input := range inputs {
		res, err := enc.Encode(input)
		if err != nil {
			t.Fatalf("Encode(%q) failed: %v", input, err)
		}

		if strings.ContainsAny(res.PakoValue, "+/=") {
			t.Errorf("PakoValue is not unpadded base64url: %q", res.PakoValue)
		}

		code, err := Decode(res.PakoValue)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if want := mindmap.Normalize(input); code != want {
			t.Errorf("roundtrip code = %q, want %q", code, want)
		}
		if code != res.CleanedText {
			t.Errorf("CleanedText = %q, decoded %q", res.CleanedText, code)
		}
	}
}

func TestEncodeSiblings(t *testing.T) {
	res, err := DefaultEncoder().Encode(sample)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if res.StructureText.Root != "Go Tour" {
		t.Errorf("Root = %q, want %q", res.StructureText.Root, "Go Tour")
	}
	if len(res.StructureText.Branches) != 1 {
		t.Errorf("expected 1 branch, got %d", len(res.StructureText.Branches))
	}
}

func TestPayloadIsJSONStringify(t *testing.T) {
	var captured []byte
	enc := NewEncoder(func(b []byte) ([]byte, error) {
		captured = append([]byte(nil), b...)
		return b, nil
	}, base64.RawURLEncoding.EncodeToString)

	if _, err := enc.Encode("mindmap\n    a <b> & c"); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := `{"code":"mindmap\n    a <b> & c"}`
	if string(captured) != want {
		t.Errorf("payload = %s, want %s", captured, want)
	}
}

func TestPayloadLineSeparators(t *testing.T) {
	var captured []byte
	enc := NewEncoder(func(b []byte) ([]byte, error) {
		captured = append([]byte(nil), b...)
		return b, nil
	}, base64.RawURLEncoding.EncodeToString)

	input := "mindmap\n    a\u2028b\u2029c"
	res, err := enc.Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// encoding/json escapes the separators where JSON.stringify does not.
	if want := `{"code":"mindmap\n    a\u2028b\u2029c"}`; string(captured) != want {
		t.Errorf("payload = %s, want %s", captured, want)
	}

	code, err := DefaultEncoder().Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(code.PakoValue)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != res.CleanedText {
		t.Errorf("decoded = %q, want %q", decoded, res.CleanedText)
	}
}

func TestEncodeFailure(t *testing.T) {
	boom := errors.New("boom")
	enc := NewEncoder(func([]byte) ([]byte, error) {
		return nil, boom
	}, base64.RawURLEncoding.EncodeToString)

	if _, err := enc.Encode(sample); !errors.Is(err, boom) {
		t.Errorf("Encode error = %v, want wrapped %v", err, boom)
	}

	var buf bytes.Buffer
	enc.SetLogger(logger.New(&buf))
	if res := enc.TryEncode(sample); res != nil {
		t.Errorf("TryEncode = %+v, want nil", res)
	}
	if !strings.Contains(buf.String(), "share encoding failed") {
		t.Errorf("expected failure to be logged, got %q", buf.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not base64", input: "***"},
		{name: "not zlib", input: base64.RawURLEncoding.EncodeToString([]byte("plain"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.input); err == nil {
				t.Errorf("Decode(%q) expected error", tt.input)
			}
		})
	}
}

func TestDecodeAcceptsPrefix(t *testing.T) {
	res := DefaultEncoder().TryEncode(sample)
	if res == nil {
		t.Fatal("TryEncode returned nil")
	}

	code, err := Decode("pako:" + res.PakoValue)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if code != res.CleanedText {
		t.Errorf("Decode = %q, want %q", code, res.CleanedText)
	}
}

func TestLinks(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"edit default base", EditURL("", "abc"), "https://mermaid.live/edit#pako:abc"},
		{"view custom base", ViewURL("https://viewer.example/", "abc"), "https://viewer.example/view#pako:abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}
