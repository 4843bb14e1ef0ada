package models

// User is an opaque identity with a display name. Users are created by the
// seeder and never mutated by the service.
type User struct {
	BaseModel
	Name string `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
}
