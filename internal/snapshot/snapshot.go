// Package snapshot reads and writes the file set of a partition as YAML,
// optionally zstd compressed, so planning can be reproduced offline.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/zstd"
	"github.com/thanos-io/objstore"

	"github.com/dynoinc/skyplan/internal/files"
)

// CompressedSuffix marks snapshot names stored zstd compressed.
const CompressedSuffix = ".zst"

type Snapshot struct {
	Partition files.PartitionID `yaml:"partition"`
	Key       string            `yaml:"key,omitempty"`
	Files     []files.File      `yaml:"files"`
}

func (s Snapshot) PartitionInfo() files.Partition {
	return files.Partition{ID: s.Partition, Key: s.Key}
}

// Marshal encodes s for storage under name.
func Marshal(s Snapshot, name string) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	if !strings.HasSuffix(name, CompressedSuffix) {
		return data, nil
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

// Unmarshal decodes a snapshot stored under name.
func Unmarshal(data []byte, name string) (Snapshot, error) {
	if strings.HasSuffix(name, CompressedSuffix) {
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return Snapshot{}, fmt.Errorf("zstd decoder: %w", err)
		}
		defer decoder.Close()

		if data, err = decoder.DecodeAll(data, nil); err != nil {
			return Snapshot{}, fmt.Errorf("decompressing snapshot: %w", err)
		}
	}

	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	for i := range s.Files {
		if s.Files[i].PartitionID == 0 {
			s.Files[i].PartitionID = s.Partition
		}
	}
	return s, nil
}

func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return Unmarshal(data, path)
}

func WriteFile(path string, s Snapshot) error {
	data, err := Marshal(s, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads the snapshot stored under name in the bucket.
func Load(ctx context.Context, bkt objstore.BucketReader, name string) (Snapshot, error) {
	r, err := bkt.Get(ctx, name)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return Unmarshal(data, name)
}

func Save(ctx context.Context, bkt objstore.Bucket, name string, s Snapshot) error {
	data, err := Marshal(s, name)
	if err != nil {
		return err
	}

	if err := bkt.Upload(ctx, name, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}
