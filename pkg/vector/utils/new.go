// Package vectorutils builds vector drivers from configuration.
package vectorutils

import (
	"fmt"
	"log/slog"

	"github.com/papercomputeco/shelf/pkg/vector"
	"github.com/papercomputeco/shelf/pkg/vector/inmemory"
	"github.com/papercomputeco/shelf/pkg/vector/sqlitevec"
)

const (
	ProviderMemory = "memory"
	ProviderSQLite = "sqlite"
)

type NewVectorDriverOpts struct {
	ProviderType string

	// Target is the sqlite database path.
	Target string

	Dimensions uint
	Logger     *slog.Logger
}

func NewVectorDriver(o *NewVectorDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case ProviderMemory, "":
		return inmemory.NewDriver(), nil
	case ProviderSQLite:
		return sqlitevec.NewDriver(sqlitevec.Config{
			DBPath:     o.Target,
			Dimensions: o.Dimensions,
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}
