package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Decode reverses the share encoding and returns the mindmap text carried in
// the payload's code field. A "pako:" prefix is accepted.
func Decode(pako string) (string, error) {
	pako = strings.TrimPrefix(strings.TrimSpace(pako), "pako:")

	compressed, err := base64.RawURLEncoding.DecodeString(pako)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	doc, err := Inflate(compressed)
	if err != nil {
		return "", fmt.Errorf("inflate payload: %w", err)
	}

	var p payload
	if err := json.Unmarshal(doc, &p); err != nil {
		return "", fmt.Errorf("parse payload: %w", err)
	}
	return p.Code, nil
}

// Inflate decompresses a zlib stream.
func Inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
