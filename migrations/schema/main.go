// Package schemamigrations holds the shared-schema migration lineage.
//
// Migrations 2 and up convert naive parent/child foreign keys to the
// composite (fk, tenant_id) -> parent(id, tenant_id) form, one relationship
// per migration, each reversible. The users email uniqueness constraint has
// its own history in this lineage: it flipped between tenant-scoped and
// global twice before settling on global (versions 4, 7 and 10); the flips
// are preserved so replaying the lineage matches production history.
package schemamigrations

import "github.com/pressly/goose/v3"

func GetMigrations() []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(
			1,
			&goose.GoFunc{RunTx: upInitialSchema},
			&goose.GoFunc{RunTx: downInitialSchema},
		),
		goose.NewGoMigration(
			2,
			&goose.GoFunc{RunTx: upCompositeBookingsClients},
			&goose.GoFunc{RunTx: downCompositeBookingsClients},
		),
		goose.NewGoMigration(
			3,
			&goose.GoFunc{RunTx: upCompositeInvoicesBookings},
			&goose.GoFunc{RunTx: downCompositeInvoicesBookings},
		),
		goose.NewGoMigration(
			4,
			&goose.GoFunc{RunTx: upUsersEmailGlobalUnique},
			&goose.GoFunc{RunTx: downUsersEmailGlobalUnique},
		),
		goose.NewGoMigration(
			5,
			&goose.GoFunc{RunTx: upCompositeTimeEntriesTasks},
			&goose.GoFunc{RunTx: downCompositeTimeEntriesTasks},
		),
		goose.NewGoMigration(
			6,
			&goose.GoFunc{RunTx: upCompositeTaskAssignees},
			&goose.GoFunc{RunTx: downCompositeTaskAssignees},
		),
		goose.NewGoMigration(
			7,
			&goose.GoFunc{RunTx: upUsersEmailTenantScoped},
			&goose.GoFunc{RunTx: downUsersEmailTenantScoped},
		),
		goose.NewGoMigration(
			8,
			&goose.GoFunc{RunTx: upCompositeWebhookDeliveries},
			&goose.GoFunc{RunTx: downCompositeWebhookDeliveries},
		),
		goose.NewGoMigration(
			9,
			&goose.GoFunc{RunTx: upCompositeWalletsClients},
			&goose.GoFunc{RunTx: downCompositeWalletsClients},
		),
		goose.NewGoMigration(
			10,
			&goose.GoFunc{RunTx: upUsersEmailGlobalUniqueFinal},
			&goose.GoFunc{RunTx: downUsersEmailGlobalUniqueFinal},
		),
	}
}
