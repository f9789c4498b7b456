package schemamigrations

import (
	"context"
	"database/sql"
)

var timeEntriesRefs = []compositeRef{
	{
		Parent:        "tasks",
		Child:         "time_entries",
		FKColumn:      "task_id",
		OldConstraint: "fk_time_entries_task",
		NewConstraint: "fk_time_entries_task_tenant",
	},
	{
		Parent:        "users",
		Child:         "time_entries",
		FKColumn:      "user_id",
		OldConstraint: "fk_time_entries_user",
		NewConstraint: "fk_time_entries_user_tenant",
	},
}

func upCompositeTimeEntriesTasks(ctx context.Context, tx *sql.Tx) error {
	for _, ref := range timeEntriesRefs {
		err := upCompositeRef(ctx, tx, ref)
		if err != nil {
			return err
		}
	}

	return nil
}

func downCompositeTimeEntriesTasks(ctx context.Context, tx *sql.Tx) error {
	for i := len(timeEntriesRefs) - 1; i >= 0; i-- {
		err := downCompositeRef(ctx, tx, timeEntriesRefs[i])
		if err != nil {
			return err
		}
	}

	return nil
}
