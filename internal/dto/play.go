package dto

// QuestionView is what a participant sees for one question: text, optional
// image, and the display labels of the options in presentation order.
// Correctness is never revealed at send time.
type QuestionView struct {
	Number   int
	Total    int
	Text     string
	ImageRef string
	Options  []string
}

// AnswerFeedback is the in-place markup edit after a tap: the tapped option
// is marked and the correct option revealed.
type AnswerFeedback struct {
	Options []string
	Chosen  int
	Correct int
}

// FinalResult is the private summary after the last question.
type FinalResult struct {
	QuizID string
	Score  int
	Total  int
}

// AnswerOutcome is the result of submitting an answer: feedback for the
// answered message, then either the next question or the final result.
type AnswerOutcome struct {
	Feedback AnswerFeedback
	Next     *QuestionView
	Final    *FinalResult
}
