package views

import "errors"

var errMissingCredentials = errors.New("Enter both username and password.")
