package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]Team, error)
	// InsertMissing stores teams whose abbreviation is not present yet and
	// reports how many rows were created.
	InsertMissing(ctx context.Context, teams []Team) (int, error)
}
