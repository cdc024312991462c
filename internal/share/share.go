// Package share encodes mindmap text into the compressed, URL-safe payload
// understood by the external diagram viewer.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/monakit/monakit/internal/logger"
	"github.com/monakit/monakit/internal/mindmap"
)

// DefaultBaseURL is the diagram service share links point at.
const DefaultBaseURL = "https://mermaid.live"

// CompressFunc compresses a payload.
type CompressFunc func([]byte) ([]byte, error)

// EncodeFunc turns compressed bytes into URL-safe text.
type EncodeFunc func([]byte) string

// Result holds the three siblings derived from one normalized text.
type Result struct {
	PakoValue     string       `json:"pakoValue"`
	CleanedText   string       `json:"cleanedText"`
	StructureText mindmap.Tree `json:"structureText"`
}

// payload is the document the viewer expects after decoding.
type payload struct {
	Code string `json:"code"`
}

// Encoder runs the share pipeline with injected codec functions.
type Encoder struct {
	compress CompressFunc
	encode   EncodeFunc
	log      *logger.Logger
}

// NewEncoder creates an encoder from explicit codec functions
func NewEncoder(compress CompressFunc, encode EncodeFunc) *Encoder {
	return &Encoder{
		compress: compress,
		encode:   encode,
		log:      logger.Discard(),
	}
}

// DefaultEncoder wires zlib at best compression and unpadded base64url,
// the format produced by pako's deflate and js-base64's URL-safe mode.
func DefaultEncoder() *Encoder {
	return NewEncoder(Deflate, base64.RawURLEncoding.EncodeToString)
}

// SetLogger sets the logger used by TryEncode
func (e *Encoder) SetLogger(l *logger.Logger) {
	e.log = logger.OrDiscard(l)
}

// Encode normalizes markdown, parses it, and encodes {"code": normalized}.
func (e *Encoder) Encode(markdown string) (*Result, error) {
	cleaned := mindmap.Normalize(markdown)
	tree := mindmap.Parse(cleaned)

	doc, err := marshalPayload(cleaned)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	compressed, err := e.compress(doc)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	return &Result{
		PakoValue:     e.encode(compressed),
		CleanedText:   cleaned,
		StructureText: tree,
	}, nil
}

// TryEncode is Encode for callers that treat a failure as "sharing
// unavailable": the error is logged and nil returned.
func (e *Encoder) TryEncode(markdown string) *Result {
	res, err := e.Encode(markdown)
	if err != nil {
		step, _, _ := strings.Cut(err.Error(), ":")
		e.log.EncodeFailed(step, err)
		return nil
	}
	return res
}

// marshalPayload encodes like JSON.stringify (no HTML escaping, no trailing
// newline) except that U+2028 and U+2029 are written as \u escapes. The
// decoded code string is identical either way.
func marshalPayload(code string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload{Code: code}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Deflate compresses data into a zlib stream at best compression.
func Deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EditURL links to the viewer's editor for an encoded diagram.
func EditURL(base, pako string) string {
	return link(base, "edit", pako)
}

// ViewURL links to the viewer's read-only page for an encoded diagram.
func ViewURL(base, pako string) string {
	return link(base, "view", pako)
}

func link(base, mode, pako string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + mode + "#pako:" + pako
}
