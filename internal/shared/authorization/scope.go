package authorization

import "gorm.io/gorm"

// Scope is the caller identity every client, subscription and payment query
// is narrowed by. Admins and managers are unrestricted; a user only sees
// rows belonging to clients they created.
type Scope struct {
	UserID uint
	Role   UserRole
}

func NewScope(userID uint, role UserRole) Scope {
	return Scope{UserID: userID, Role: role}
}

// SystemScope is used by background jobs and CLI commands.
func SystemScope() Scope {
	return Scope{Role: RoleAdmin}
}

func (s Scope) Restricted() bool {
	return !s.Role.SeesAll()
}

// OwnerID is the created_by value list filters must match, or nil when
// the caller is unrestricted.
func (s Scope) OwnerID() *uint {
	if !s.Restricted() {
		return nil
	}
	id := s.UserID
	return &id
}

// CanAccess reports whether a record owned by ownerID is visible to the caller.
func (s Scope) CanAccess(ownerID uint) bool {
	return !s.Restricted() || s.UserID == ownerID
}

// ByOwner narrows a query on ownerColumn when owner is set.
func ByOwner(ownerColumn string, owner *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if owner == nil {
			return db
		}
		return db.Where(ownerColumn+" = ?", *owner)
	}
}
