package banner

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

// ImageRef is an opaque handle to a raster image: either an inline payload
// (self-contained bytes plus a media type) or a remote locator (URL).
//
// The JSON form is a single string, matching the persisted banner record:
// inline refs serialize as data URIs, remote refs as their URL. Refs are
// never mutated in place; resolving a remote ref produces a new inline ref.
type ImageRef struct {
	url       string
	mediaType string
	data      []byte
}

// RemoteRef creates an ImageRef pointing at a URL.
func RemoteRef(url string) ImageRef {
	return ImageRef{url: url}
}

// InlineRef creates a self-contained ImageRef from raw bytes.
func InlineRef(mediaType string, data []byte) ImageRef {
	return ImageRef{mediaType: mediaType, data: data}
}

// ParseImageRef parses a persisted string form: a data URI yields an inline
// ref, anything else is treated as a remote URL.
func ParseImageRef(s string) (ImageRef, error) {
	if s == "" {
		return ImageRef{}, errors.New(errors.ErrCodeInvalidInput, "image reference cannot be empty")
	}
	if !strings.HasPrefix(s, "data:") {
		return RemoteRef(s), nil
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return ImageRef{}, errors.New(errors.ErrCodeInvalidInput, "malformed data URI")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if mediaType == "" {
		mediaType = "text/plain"
	}
	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return ImageRef{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode data URI payload")
		}
	} else {
		data = []byte(payload)
	}
	return InlineRef(mediaType, data), nil
}

// IsZero reports whether the ref holds neither a URL nor inline data.
func (r ImageRef) IsZero() bool { return r.url == "" && len(r.data) == 0 }

// Inline reports whether the ref is self-contained.
func (r ImageRef) Inline() bool { return len(r.data) > 0 }

// URL returns the remote locator, or "" for inline refs.
func (r ImageRef) URL() string { return r.url }

// MediaType returns the declared media type of an inline ref.
func (r ImageRef) MediaType() string { return r.mediaType }

// Data returns the inline payload. Callers must not modify it.
func (r ImageRef) Data() []byte { return r.data }

// Resolve returns a new inline ref carrying the fetched bytes for this
// ref's locator. The receiver is unchanged.
func (r ImageRef) Resolve(mediaType string, data []byte) ImageRef {
	return InlineRef(mediaType, data)
}

// Clone returns a copy with its own backing buffer.
func (r ImageRef) Clone() ImageRef {
	out := r
	if r.data != nil {
		out.data = append([]byte(nil), r.data...)
	}
	return out
}

// String returns the persisted form: data URI for inline refs, the URL
// otherwise.
func (r ImageRef) String() string {
	if r.Inline() {
		return fmt.Sprintf("data:%s;base64,%s", r.mediaType, base64.StdEncoding.EncodeToString(r.data))
	}
	return r.url
}

// MarshalJSON encodes the ref as its string form.
func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the string form.
func (r *ImageRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*r = ImageRef{}
		return nil
	}
	parsed, err := ParseImageRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
