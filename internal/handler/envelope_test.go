package handler

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBody(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{name: "nil", keys: nil, want: `{"bucket_names": []}`},
		{name: "single", keys: []string{"test-object.txt"}, want: `{"bucket_names": ["test-object.txt"]}`},
		{name: "separators", keys: []string{"a.txt", "b.txt"}, want: `{"bucket_names": ["a.txt", "b.txt"]}`},
		{name: "quotes and backslashes", keys: []string{`say "hi"\now`}, want: `{"bucket_names": ["say \"hi\"\\now"]}`},
		{name: "control characters", keys: []string{"tab\there\nnew\x01"}, want: `{"bucket_names": ["tab\there\nnew\u0001"]}`},
		{name: "html is not escaped", keys: []string{"<a&b>"}, want: `{"bucket_names": ["<a&b>"]}`},
		{name: "non-ascii", keys: []string{"画像/写真.jpg"}, want: `{"bucket_names": ["\u753b\u50cf/\u5199\u771f.jpg"]}`},
		{name: "outside the BMP", keys: []string{"😀"}, want: `{"bucket_names": ["\ud83d\ude00"]}`},
		{name: "delete character", keys: []string{"\x7f"}, want: `{"bucket_names": ["\u007f"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeBody(tt.keys)
			assert.Equal(t, tt.want, got)

			var payload map[string][]string
			require.NoError(t, json.Unmarshal([]byte(got), &payload), "body must stay valid JSON")
			if len(tt.keys) > 0 {
				assert.Equal(t, tt.keys, payload["bucket_names"])
			}
		})
	}
}

func TestEnvelope(t *testing.T) {
	ok := Envelope(Result{Keys: []string{"a.txt"}})
	assert.Equal(t, Response{StatusCode: 200, Body: `{"bucket_names": ["a.txt"]}`}, ok)

	failed := Envelope(Result{Keys: []string{"stale"}, Err: errors.New("boom")})
	assert.Equal(t, Response{StatusCode: 200, Body: `{"bucket_names": []}`}, failed)
}
