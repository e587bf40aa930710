package entity

const RoleAdmin = "admin"

// Actor is the authenticated identity a request runs as. The zero value is
// an anonymous visitor.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) Anonymous() bool {
	return a.UserID == ""
}

// CanManage reports whether the actor owns the resource or is an admin.
func (a Actor) CanManage(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}
