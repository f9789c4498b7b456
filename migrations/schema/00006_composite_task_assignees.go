package schemamigrations

import (
	"context"
	"database/sql"
)

var taskAssigneeRefs = []compositeRef{
	{
		Parent:        "tasks",
		Child:         "task_assignees",
		FKColumn:      "task_id",
		OldConstraint: "fk_task_assignees_task",
		NewConstraint: "fk_task_assignees_task_tenant",
	},
	{
		Parent:        "users",
		Child:         "task_assignees",
		FKColumn:      "user_id",
		OldConstraint: "fk_task_assignees_user",
		NewConstraint: "fk_task_assignees_user_tenant",
	},
}

func upCompositeTaskAssignees(ctx context.Context, tx *sql.Tx) error {
	for _, ref := range taskAssigneeRefs {
		err := upCompositeRef(ctx, tx, ref)
		if err != nil {
			return err
		}
	}

	return nil
}

func downCompositeTaskAssignees(ctx context.Context, tx *sql.Tx) error {
	for i := len(taskAssigneeRefs) - 1; i >= 0; i-- {
		err := downCompositeRef(ctx, tx, taskAssigneeRefs[i])
		if err != nil {
			return err
		}
	}

	return nil
}
