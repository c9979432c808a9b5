package models

import "errors"

// ErrMissingIdentityID is returned when a profile is created without the
// id of its identity record.
var ErrMissingIdentityID = errors.New("profile id must be the identity id")
