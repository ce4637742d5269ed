package cardsnap

import (
	"encoding/base64"
	"strings"
)

// MIMEPNG is the media type of captured images.
const MIMEPNG = "image/png"

// EncodeDataURL returns data as a base64 data URL of the given media type.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL parses a base64 data URL and returns its media type and payload.
func DecodeDataURL(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, Errorf(EINVALID, "not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, Errorf(EINVALID, "malformed data URL")
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, Errorf(EINVALID, "data URL is not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, Errorf(EINVALID, "invalid data URL payload: %v", err)
	}
	return mime, data, nil
}
