package entity

import (
	"context"

	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

// MigrateTable creates the tables with gorm. It is used for sqlite databases,
// mysql databases are migrated with the sql files of the repository package.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Account{},
		&LedgerEntry{},
		&PrizeDefinition{},
		&DrawHistory{},
		&ClaimTransition{},
	)
}
