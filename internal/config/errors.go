package config

import (
	"errors"
)

var (
	// ErrEmptySessionSecret error if config webserver.sessionSecret is empty.
	ErrEmptySessionSecret = errors.New("toml config webserver.sessionSecret can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")
)
