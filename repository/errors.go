package repository

import "errors"

var ErrInvalidKey = errors.New("natural key must not be empty")
