package auth

import (
	"fmt"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

// Identity is the resolved caller of a gated request. It is either a
// UserIdentity or an AdminIdentity; switch on the concrete type.
type Identity interface {
	Account() model.Account
	Role() model.Role
}

type UserIdentity struct {
	Profile model.Account
}

func (u UserIdentity) Account() model.Account { return u.Profile }
func (UserIdentity) Role() model.Role         { return model.RoleUser }

type AdminIdentity struct {
	Profile model.Account
}

func (a AdminIdentity) Account() model.Account { return a.Profile }
func (AdminIdentity) Role() model.Role         { return model.RoleAdmin }

func IdentityFor(a model.Account) (Identity, error) {
	switch a.Role {
	case model.RoleUser:
		return UserIdentity{Profile: a}, nil
	case model.RoleAdmin:
		return AdminIdentity{Profile: a}, nil
	}
	return nil, fmt.Errorf("unknown role %q", a.Role)
}
