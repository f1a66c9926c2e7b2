package app

import "errors"

var ErrOutputWrite = errors.New("output write failed")
