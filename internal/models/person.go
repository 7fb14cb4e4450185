package models

// Person is the shared identity surface of the people tracked by the
// system. Student and Instructor are its two concrete shapes.
type Person interface {
	PersonID() string
	Name() string
	EmailAddress() string
	IsActive() bool
	Role() string
}
