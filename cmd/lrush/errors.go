package main

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errEnvInvalid         = errors.New("invalid environment")
	errCapacityInvalid    = errors.New("invalid capacity")
	errIndexWidthInvalid  = errors.New("invalid index width")
	errUnexpectedArgs     = errors.New("unexpected arguments")
)
