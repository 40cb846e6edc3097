package game

import "context"

// Repository is the write side used by ingestion. Games are only ever
// inserted; existing rows are never updated or deleted here.
type Repository interface {
	ExistsByID(ctx context.Context, gameID string) (bool, error)
	// InsertBatch stores all games in one transaction. Rows whose id already
	// exists are left untouched and are not counted in the returned total.
	InsertBatch(ctx context.Context, games []Game) (int, error)
}
