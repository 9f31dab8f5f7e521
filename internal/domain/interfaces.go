package domain

import (
	"context"
)

type Bridge interface {
	Devices(ctx context.Context) ([]Device, error)
	GetProp(ctx context.Context, serial, key string) (string, error)
	Push(ctx context.Context, serial, local, remote string) error
	Shell(ctx context.Context, serial, command string) (string, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, asset Asset) FetchResult
}

type Cache interface {
	Has(asset Asset) bool
	PathFor(asset Asset) string
	Store(asset Asset, src string) (string, error)
	Size() (int64, error)
	Clear() error
}

type Extractor interface {
	Extract(src, dst string) error
}

type Registry interface {
	Latest(ctx context.Context) (string, error)
}

type History interface {
	Record(rec *PushRecord) error
	Last(serial string) (*PushRecord, error)
	All() ([]*PushRecord, error)
	Close() error
}
