package storage

import (
	"context"
	"strconv"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// ResolveTaskID maps a user-supplied task reference (numeric id or free-text
// title) to a concrete task id. Numeric input is returned verbatim without a
// lookup; ownership is re-checked at the point of use by every tool. Title
// input is resolved with an exact, owner-scoped match (lowest id wins on
// duplicates). Every mutating tool goes through this helper instead of
// parsing identifiers itself.
func ResolveTaskID(ctx context.Context, db sqlscan.Querier, userID, identifier string) (int64, bool, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return id, true, nil
	}
	return GetTaskIDByTitle(ctx, db, userID, identifier)
}
