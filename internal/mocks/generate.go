// Package mocks contains mock implementations of interfaces used in the skyplan project.
// This file is not used for anything except generating mocks - it shouldn't be imported.
// Execute `go generate ./internal/mocks/generate.go` to regenerate all mocks.
package mocks

//go:generate go tool mockgen -destination=mock_components.go -package=mocks github.com/dynoinc/skyplan/internal/components PartitionFilesSource,RoundSplit,Divide,Commit
//go:generate go tool mockgen -destination=mock_database.go -package=mocks github.com/dynoinc/skyplan/internal/database Querier
