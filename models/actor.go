package models

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

// CanManage reports whether the actor owns the resource or is an admin.
func (a Actor) CanManage(ownerID uint) bool {
	return a.IsAdmin || (a.UserID != 0 && a.UserID == ownerID)
}
