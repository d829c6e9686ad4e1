// Package storage picks the Record Store backend named by the configuration.
package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
	"github.com/trezcool/somo/storage/database"
	dummydb "github.com/trezcool/somo/storage/dummy"
	"github.com/trezcool/somo/storage/sheets"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Connector returns the connector of the configured backend. Nothing is opened until the store's first use.
func Connector(conf *core.Config) (table.Connector, error) {
	switch conf.Backend {
	case core.BackendSheets:
		return sheets.Connector(conf.Sheets), nil
	case core.BackendPostgres:
		return database.Connector(conf.Database), nil
	case core.BackendMemory:
		return dummydb.Connector(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", conf.Backend)
	}
}

// NewStore returns a Record Store over the configured backend.
func NewStore(conf *core.Config, logger core.Logger) (*table.Store, error) {
	connect, err := Connector(conf)
	if err != nil {
		return nil, err
	}
	return table.NewStore(connect, logger), nil
}
