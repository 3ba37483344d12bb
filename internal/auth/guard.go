package auth

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/apperr"
)

func RequireAuthenticated(id *Identity) error {
	if id == nil {
		return apperr.Authentication(MsgTokenMissing)
	}
	return nil
}

// RequireSelfOrAdmin lets the owner or any admin through.
func RequireSelfOrAdmin(id *Identity, owner uuid.UUID) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if id.IsAdmin || id.ID == owner {
		return nil
	}
	return apperr.Authorization("Unauthorized access")
}

func RequireOwner(id *Identity, owner uuid.UUID) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if id.ID != owner {
		return apperr.Authorization("Unauthorized access")
	}
	return nil
}

func RequireAdmin(id *Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !id.IsAdmin {
		return apperr.Authorization("admin access required")
	}
	return nil
}
