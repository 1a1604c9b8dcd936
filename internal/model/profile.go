package model

import "time"

// Profile is a member of the team directory.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Holidays  []Holiday `json:"holidays,omitempty"`
}

// DisplayName returns the name shown on the booking page.
func (p Profile) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// Holiday is a calendar-level day off attached to a profile.
type Holiday struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	WorkingDay bool      `json:"is_working_day"`
}

type identifierKind int

const (
	identifierByID identifierKind = iota
	identifierByUsername
	identifierMe
)

// ProfileIdentifier selects a profile by id, by username, or as the profile
// bound to the current authorization ("me").
type ProfileIdentifier struct {
	kind  identifierKind
	value string
}

// ProfileByID identifies a profile by its directory id.
func ProfileByID(id string) ProfileIdentifier {
	return ProfileIdentifier{kind: identifierByID, value: id}
}

// ProfileByUsername identifies a profile by username.
func ProfileByUsername(username string) ProfileIdentifier {
	return ProfileIdentifier{kind: identifierByUsername, value: username}
}

// ProfileMe identifies the profile of the calling principal.
func ProfileMe() ProfileIdentifier {
	return ProfileIdentifier{kind: identifierMe}
}

// String renders the identifier in the wire form used by the hub API
// ("id:...", "username:..." or "me").
func (i ProfileIdentifier) String() string {
	switch i.kind {
	case identifierByUsername:
		return "username:" + i.value
	case identifierMe:
		return "me"
	default:
		return "id:" + i.value
	}
}
