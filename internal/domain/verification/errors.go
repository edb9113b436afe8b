package verification

import "errors"

var ErrVerificationNotFound = errors.New("contractor verification not found")
