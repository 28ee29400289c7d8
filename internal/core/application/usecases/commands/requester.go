package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Account roles recognized by the fulfillment core. The accounts service
// owns authentication; commands only receive the authenticated identity.
const (
	RoleBuyer      = "buyer"
	RoleFarmer     = "farmer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleDriver     = "driver"
	RoleLogistics  = "logistics"
)

// ErrRequesterIsNotConstructed is returned when a Requester was not created
// through the NewRequester constructor.
var ErrRequesterIsNotConstructed = errors.New(
	"Requester must be created via NewRequester constructor",
)

// Requester is the authenticated identity on whose behalf a command runs.
type Requester struct { //nolint:recvcheck //using for validation
	id   kernel.UUID
	role string

	guard guard.ConstructorGuard
}

// NewRequester creates a requester identity, rejecting unknown roles.
func NewRequester(id kernel.UUID, role string) (Requester, error) {
	r := Requester{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(r.setID(id), r.setRole(role)); err != nil {
		return Requester{}, err
	}

	return r, nil
}

// Validate ensures the requester was created through the constructor.
func (r Requester) Validate() error {
	return r.guard.Validate(ErrRequesterIsNotConstructed)
}

// ID returns the requester's account identifier.
func (r Requester) ID() kernel.UUID {
	return r.id
}

// Role returns the requester's role.
func (r Requester) Role() string {
	return r.role
}

// IsAdmin reports whether the requester holds an administrative role.
func (r Requester) IsAdmin() bool {
	return r.role == RoleAdmin || r.role == RoleSuperAdmin
}

// AuthorizeOrderAccess checks that the requester may mutate the order:
// admins always may, everyone else must be the order's buyer or farmer.
func (r Requester) AuthorizeOrderAccess(aggregate *order.Order) error {
	if r.IsAdmin() || aggregate.IsOwnedBy(r.id) {
		return nil
	}
	return errs.NewAuthorizationError(
		fmt.Sprintf("account %s may not modify order %s", r.id, aggregate.ID()))
}

func (r *Requester) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Requester) setRole(role string) error {
	switch role {
	case RoleBuyer, RoleFarmer, RoleAdmin, RoleSuperAdmin, RoleDriver, RoleLogistics:
		r.role = role
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%q is not a valid role", role))
	}
}
