package models

// Person is a member of a trip.
type Person struct {
	// ID is unique within a trip.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// AvatarColor is an opaque display token (e.g. "#FCD34D").
	AvatarColor string `json:"avatarColor"`
}
