package result

import (
	"bytes"
	"encoding/base64"
)

var imageSignatures = []struct {
	magic []byte
	mime  string
}{
	{[]byte("\x89PNG"), "image/png"},
	{[]byte("\xff\xd8\xff"), "image/jpeg"},
	{[]byte("GIF8"), "image/gif"},
}

// ImageRenderer detects binary image payloads by magic-byte sniffing over raw
// byte slices. Non-byte values never match.
type ImageRenderer struct{}

// Name implements Renderer.
func (ImageRenderer) Name() string { return "image" }

// CanRender accepts []byte values carrying a PNG, JPEG, or GIF signature.
func (ImageRenderer) CanRender(value any) bool {
	return sniffImageMIME(value) != ""
}

// Render emits a base64 data URI the browser can drop into an <img> src.
func (ImageRenderer) Render(value any) (RenderedResult, error) {
	mime := sniffImageMIME(value)
	payload := value.([]byte)
	encoded := base64.StdEncoding.EncodeToString(payload)
	return RenderedResult{
		Type: TypeImage,
		Data: "data:" + mime + ";base64," + encoded,
		Options: map[string]any{
			"mime": mime,
			"size": len(payload),
		},
	}, nil
}

func sniffImageMIME(value any) string {
	payload, ok := value.([]byte)
	if !ok {
		return ""
	}
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(payload, sig.magic) {
			return sig.mime
		}
	}
	return ""
}
