package domain

import "errors"

var (
	// ErrTeamNameRequired is returned when a code is requested for a blank team name.
	ErrTeamNameRequired = errors.New("team name is required")
	// ErrQuestionNotFound indicates an update targeted a missing question ID.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionTextRequired indicates a question was submitted without text.
	ErrQuestionTextRequired = errors.New("question text is required")
	// ErrInvalidCorrectAnswer indicates the correct-answer index falls outside the options list.
	ErrInvalidCorrectAnswer = errors.New("correct answer must index an option")
	// ErrInvalidDuration indicates a non-positive quiz duration.
	ErrInvalidDuration = errors.New("duration must be a positive number of seconds")
	// ErrNoQuestions is returned when a quiz is started with no questions loaded.
	ErrNoQuestions = errors.New("no questions available")
	// ErrQuizFinished is returned when a submitted session is driven again.
	ErrQuizFinished = errors.New("quiz already submitted")
	// ErrQuizNotStarted is returned when answers arrive before the start action.
	ErrQuizNotStarted = errors.New("quiz not started")
)
