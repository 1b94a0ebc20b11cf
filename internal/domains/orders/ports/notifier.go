package ports

import "context"

// ChangeNotifier is told whenever an owner's committed orders change.
type ChangeNotifier interface {
	OrdersChanged(ctx context.Context, ownerID string)
}
