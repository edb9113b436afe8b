package request

import (
	"errors"
	"fmt"

	vo "github.com/minerepair/repairhub/internal/domain/request/valueobjects"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateResponse = errors.New("contractor already responded to this request")
)

func transitionError(from, to vo.Status) error {
	return fmt.Errorf("%w: cannot move request from %s to %s", ErrInvalidTransition, from, to)
}
