package cache

import "errors"

var ErrNotFound = errors.New("cache miss")
