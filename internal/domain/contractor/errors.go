package contractor

import "errors"

var ErrProfileNotFound = errors.New("contractor profile not found")
