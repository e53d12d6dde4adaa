package chat

import (
	"context"

	"github.com/Utkarsh4517/fast-chat/internal/store"
)

// CredentialGate answers whether a claimed sender name belongs to a known
// account. The session consults it before persisting or broadcasting a line;
// it is a pure lookup with no side effects. Account creation and password
// verification live behind the HTTP boundary, not here.
type CredentialGate interface {
	IsKnown(ctx context.Context, accountName string) (bool, error)
}

// StoreGate is the default gate, backed by the user table.
type StoreGate struct {
	Store store.Store
}

func (g StoreGate) IsKnown(ctx context.Context, accountName string) (bool, error) {
	return g.Store.UserExists(ctx, accountName)
}
