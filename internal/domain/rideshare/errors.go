package rideshare

import "errors"

var (
	ErrRideInProgress = errors.New("a ride is already being tracked")
	ErrNoCurrentRide  = errors.New("no ride is being tracked")
	ErrTripNotFound   = errors.New("trip not found")
)
