package banner

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bannerforge/bannerforge/pkg/errors"
)

func TestParseImageRef(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantErr   bool
		inline    bool
		mediaType string
		data      []byte
	}{
		{name: "remote url", in: "https://example.com/a.png"},
		{name: "base64 data uri", in: "data:image/png;base64,AQID", inline: true, mediaType: "image/png", data: []byte{1, 2, 3}},
		{name: "plain data uri", in: "data:,hello", inline: true, mediaType: "text/plain", data: []byte("hello")},
		{name: "empty", in: "", wantErr: true},
		{name: "malformed data uri", in: "data:image/png;base64", wantErr: true},
		{name: "bad base64", in: "data:image/png;base64,!!!", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseImageRef(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Fatalf("error = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Inline() != tt.inline {
				t.Errorf("Inline = %v, want %v", ref.Inline(), tt.inline)
			}
			if tt.inline {
				if ref.MediaType() != tt.mediaType {
					t.Errorf("MediaType = %q, want %q", ref.MediaType(), tt.mediaType)
				}
				if !bytes.Equal(ref.Data(), tt.data) {
					t.Errorf("Data = %v, want %v", ref.Data(), tt.data)
				}
			} else if ref.URL() != tt.in {
				t.Errorf("URL = %q, want %q", ref.URL(), tt.in)
			}
		})
	}
}

func TestImageRefString(t *testing.T) {
	remote := RemoteRef("https://example.com/a.png")
	if remote.String() != "https://example.com/a.png" {
		t.Errorf("remote String = %q", remote.String())
	}

	inline := InlineRef("image/png", []byte{1, 2, 3})
	want := "data:image/png;base64,AQID"
	if inline.String() != want {
		t.Errorf("inline String = %q, want %q", inline.String(), want)
	}

	// String form parses back to an equivalent ref.
	back, err := ParseImageRef(inline.String())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !bytes.Equal(back.Data(), inline.Data()) || back.MediaType() != inline.MediaType() {
		t.Error("string form did not round trip")
	}
}

func TestImageRefResolve(t *testing.T) {
	remote := RemoteRef("https://example.com/a.png")
	resolved := remote.Resolve("image/png", []byte{9})
	if !resolved.Inline() {
		t.Error("resolved ref should be inline")
	}
	if remote.Inline() {
		t.Error("Resolve must not mutate the receiver")
	}
}

func TestImageRefClone(t *testing.T) {
	orig := InlineRef("image/png", []byte{1, 2, 3})
	clone := orig.Clone()
	clone.Data()[0] = 9
	if orig.Data()[0] != 1 {
		t.Error("clone shares the data buffer")
	}
}

func TestImageRefJSON(t *testing.T) {
	type wrapper struct {
		Ref ImageRef `json:"ref"`
	}

	in := wrapper{Ref: InlineRef("image/jpeg", []byte{0xFF, 0xD8})}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out wrapper
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !bytes.Equal(out.Ref.Data(), in.Ref.Data()) || out.Ref.MediaType() != "image/jpeg" {
		t.Errorf("JSON round trip lost payload: %+v", out.Ref)
	}

	// Empty string decodes to the zero ref.
	var zero wrapper
	if err := json.Unmarshal([]byte(`{"ref":""}`), &zero); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !zero.Ref.IsZero() {
		t.Error("empty string should decode to zero ref")
	}
}
