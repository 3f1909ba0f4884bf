// Package memcatalog is an in-memory partition catalog used to simulate
// compaction and in tests.
package memcatalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dynoinc/skyplan/internal/components"
	"github.com/dynoinc/skyplan/internal/files"
)

const firstCreatedID = 1000

// CommitRecord is one commit applied to the catalog.
type CommitRecord struct {
	Partition files.PartitionID
	Delete    []files.File
	Upgrade   []files.File
	Created   []files.File
	Target    files.Level
}

// Catalog holds the live files of every partition.
type Catalog struct {
	mu         sync.Mutex
	partitions map[files.PartitionID]map[int64]files.File
	nextID     int64
	history    []CommitRecord
}

var (
	_ components.PartitionFilesSource = (*Catalog)(nil)
	_ components.Commit               = (*Catalog)(nil)
)

func New() *Catalog {
	return &Catalog{
		partitions: make(map[files.PartitionID]map[int64]files.File),
		nextID:     firstCreatedID,
	}
}

// Add stores files as they are. IDs must be unique; files created by later
// commits get IDs above every added one.
func (c *Catalog) Add(fs ...files.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range fs {
		c.partition(f.PartitionID)[f.ID] = f
		c.nextID = max(c.nextID, f.ID+1)
	}
}

func (c *Catalog) Fetch(_ context.Context, partition files.PartitionID) ([]files.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.partitions[partition]
	fs := make([]files.File, 0, len(live))
	for _, f := range live {
		fs = append(fs, f)
	}
	slices.SortFunc(fs, func(a, b files.File) int { return cmp.Compare(a.ID, b.ID) })
	return fs, nil
}

// Commit deletes and upgrades existing files and adds new ones, atomically.
// Created files get fresh IDs, returned in order.
func (c *Catalog) Commit(
	_ context.Context,
	partition files.PartitionID,
	deleteFiles, upgrade, create []files.File,
	target files.Level,
) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.partition(partition)
	for _, f := range slices.Concat(deleteFiles, upgrade) {
		if _, ok := live[f.ID]; !ok {
			return nil, fmt.Errorf("file %d not found in partition %d", f.ID, partition)
		}
	}

	for _, f := range deleteFiles {
		delete(live, f.ID)
	}
	for _, f := range upgrade {
		f = live[f.ID]
		f.Level = target
		live[f.ID] = f
	}

	ids := make([]int64, 0, len(create))
	created := make([]files.File, 0, len(create))
	for _, f := range create {
		f.ID = c.nextID
		f.PartitionID = partition
		c.nextID++

		live[f.ID] = f
		ids = append(ids, f.ID)
		created = append(created, f)
	}

	c.history = append(c.history, CommitRecord{
		Partition: partition,
		Delete:    slices.Clone(deleteFiles),
		Upgrade:   slices.Clone(upgrade),
		Created:   created,
		Target:    target,
	})
	return ids, nil
}

// History returns every commit applied so far, oldest first.
func (c *Catalog) History() []CommitRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.history)
}

func (c *Catalog) partition(id files.PartitionID) map[int64]files.File {
	live, ok := c.partitions[id]
	if !ok {
		live = make(map[int64]files.File)
		c.partitions[id] = live
	}
	return live
}
