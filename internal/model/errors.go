package model

import "errors"

// ErrUnknownStatusFilter is returned for a list filter value that is neither
// a storable status nor a recognized aggregate.
var ErrUnknownStatusFilter = errors.New("unknown order status filter")
