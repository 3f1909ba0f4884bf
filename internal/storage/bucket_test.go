package storage

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "in memory", url: "inmemory://"},
		{name: "filesystem", url: "filesystem://" + filepath.Join(t.TempDir(), "bucket")},
		{name: "s3 without bucket", url: "s3://localhost:9000/", wantErr: true},
		{name: "unknown scheme", url: "gopher://somewhere", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bkt, err := New(ctx, tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			require.NoError(t, bkt.Upload(ctx, "partitions/1.yaml", bytes.NewReader([]byte("partition: 1"))))
			r, err := bkt.Get(ctx, "partitions/1.yaml")
			require.NoError(t, err)
			defer r.Close()

			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "partition: 1", string(data))
		})
	}
}
