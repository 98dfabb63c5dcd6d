// file: internal/metadata/source.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-e1f2a3b4c5d6

package metadata

import "context"

// CoverSource is a pluggable bibliographic provider used for cover lookups.
// FindCover returns the raw thumbnail URL of the best match, or "" with a nil
// error when the search succeeded but nothing usable came back.
type CoverSource interface {
	Name() string
	FindCover(ctx context.Context, title, author string) (string, error)
}
