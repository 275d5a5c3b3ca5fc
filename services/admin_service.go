package services

import (
	"context"
	"errors"

	"kitabcloud/models"
	"kitabcloud/repository"
)

// AdminStore looks up admin records by email.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AdminService answers existence checks for admins and sub-admins. These are
// flat equality lookups; there is no session or token model.
type AdminService struct {
	admins    AdminStore
	subadmins AdminStore
}

// NewAdminService creates an admin service over the two stores
func NewAdminService(admins, subadmins AdminStore) *AdminService {
	return &AdminService{
		admins:    admins,
		subadmins: subadmins,
	}
}

// CheckAdmin reports whether an admin with the given email exists
func (as *AdminService) CheckAdmin(ctx context.Context, email string) (*models.Admin, bool, error) {
	return check(ctx, as.admins, email)
}

// CheckSubAdmin reports whether a sub-admin with the given email exists
func (as *AdminService) CheckSubAdmin(ctx context.Context, email string) (*models.Admin, bool, error) {
	return check(ctx, as.subadmins, email)
}

func check(ctx context.Context, store AdminStore, email string) (*models.Admin, bool, error) {
	admin, err := store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return admin, true, nil
}
