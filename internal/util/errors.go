package util

import "errors"

var (
	ErrNoToken            = errors.New("not logged in")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrNoQuestions        = errors.New("no questions to practice")
	ErrConfidenceRequired = errors.New("select a confidence level before moving on")
	ErrInvalidConfidence  = errors.New("confidence level must be 1, 2 or 3")
	ErrPracticeFinished   = errors.New("all questions have been answered")
	ErrUnknownProblem     = errors.New("unknown test problem")
	ErrMalformedToken     = errors.New("malformed token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTextRequired       = errors.New("todo text is required")
	ErrNothingToExport    = errors.New("nothing to export")
)
