package service

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid dispenser transition")
	ErrPoolExhausted     = errors.New("challenge pool exhausted for this hour")
	ErrInvalidAction     = errors.New("unknown resolve action")
	ErrEmptyCatalog      = errors.New("challenge catalog is empty")
)
