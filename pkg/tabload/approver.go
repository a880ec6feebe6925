package tabload

import "context"

// Approver handles user interaction for approval workflows,
// particularly for destructive operations like table replacement.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the table name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before dropping and recreating a table.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - tableName: Name of the table to be replaced
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, tableName string) (bool, error)
}
