package router

import "errors"

var (
	errTooFewMembers  = errors.New("need at least two members to start")
	errAlreadyStarted = errors.New("game already started")
	errGameNotActive  = errors.New("game is not active")
)
