package example

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/wasset"
)

func TestEncoder(t *testing.T) {
	t.Parallel()

	enc := NewEncoder()

	tests := []struct {
		name    string
		ext     string
		meta    wasset.Table
		data    []byte
		want    Asset
		wantOK  bool
		wantErr bool
	}{
		{name: "text", ext: "txt", data: []byte("hi"), want: Text("hi"), wantOK: true},
		{name: "text with append", ext: "txt", meta: wasset.Table{"append": "!"}, data: []byte("hi"), want: Text("hi!"), wantOK: true},
		{name: "invalid utf8", ext: "txt", data: []byte{'a', 0xff}, want: Text("a�"), wantOK: true},
		{name: "binary", ext: "bin", data: []byte{1, 2, 3}, want: Binary([]byte{1, 2, 3}), wantOK: true},
		{name: "unknown extension", ext: "png", data: []byte{1}},
		{name: "no extension", ext: "", data: []byte{1}},
		{name: "bad append", ext: "txt", meta: wasset.Table{"append": int64(3)}, data: []byte("x"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			meta := tt.meta
			if meta == nil {
				meta = wasset.Table{}
			}
			got, ok, err := enc.Encode(tt.ext, meta, tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAssetBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("hi"), Text("hi").Bytes())
	assert.Equal(t, []byte{1}, Binary([]byte{1}).Bytes())
	assert.Equal(t, `Text("hi")`, Text("hi").String())
	assert.Equal(t, "text", KindText.String())
}
