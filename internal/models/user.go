package models

// Privilege levels. PrivilegeFull grants edit and delete rights on
// entries; anything else is read-only. PrivilegeUnauthenticated is the
// sentinel reported for callers without a session.
const (
	PrivilegeFull            = 1
	PrivilegeUnauthenticated = 3
)

// User represents an account in the catch log.
type User struct {
	ID        string `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string `json:"username" bson:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string `json:"email" bson:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Password  string `json:"-" bson:"password" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Privilege int    `json:"privilege" bson:"privilege"`
}
