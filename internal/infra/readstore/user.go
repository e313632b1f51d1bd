package readstore

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/commands"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) PayerByID(ctx context.Context, id uuid.UUID) (*commands.Payer, error) {
	const q = `
		SELECT first_name, last_name, email
		FROM users
		WHERE id = $1 AND is_active`

	var payer commands.Payer
	err := r.db.QueryRow(ctx, q, id).Scan(&payer.Name, &payer.Surname, &payer.Email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &payer, nil
}
