package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"goflare.io/storefront/driver"
)

var _ Source = (*postgresSource)(nil)

const listDessertsSQL = `SELECT id, name, price, image_src FROM desserts ORDER BY position, id`

// postgresSource reads the catalog from the desserts table:
//
//	CREATE TABLE desserts (
//	    id        BIGINT PRIMARY KEY,
//	    name      TEXT NOT NULL,
//	    price     TEXT NOT NULL,
//	    image_src TEXT NOT NULL DEFAULT '',
//	    position  INT  NOT NULL DEFAULT 0
//	);
type postgresSource struct {
	tm     *driver.TransactionManager
	logger *zap.Logger
}

func NewPostgresSource(tm *driver.TransactionManager, logger *zap.Logger) Source {
	return &postgresSource{
		tm:     tm,
		logger: logger,
	}
}

func (s *postgresSource) Load(ctx context.Context) (*Catalog, error) {
	var records []record

	err := s.tm.ExecuteReadOnlyTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listDessertsSQL)
		if err != nil {
			return fmt.Errorf("failed to query desserts: %w", err)
		}
		records, err = pgx.CollectRows(rows, pgx.RowToStructByName[record])
		if err != nil {
			return fmt.Errorf("failed to scan desserts: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to load catalog", zap.Error(err))
		return nil, err
	}

	c, err := fromRecords(records)
	if err != nil {
		s.logger.Error("Rejected catalog", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Loaded catalog", zap.Int("desserts", c.Len()))
	return c, nil
}
