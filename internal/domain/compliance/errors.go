package compliance

import "errors"

var (
	ErrInvalidPeriod = errors.New("period end must not be before period start")
)
