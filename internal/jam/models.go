// Package jam implements the code jam signup gate: ban records with a
// decrement-once-per-jam countdown, application form validation, and the
// signup responses themselves.
package jam

import "slices"

// Jam is a single code jam event users can apply to.
type Jam struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// QuestionType discriminates how an answer is validated.
type QuestionType string

const (
	QuestionCheckbox QuestionType = "checkbox"
	QuestionEmail    QuestionType = "email"
	QuestionNumber   QuestionType = "number"
	QuestionRange    QuestionType = "range"
	QuestionSlider   QuestionType = "slider"
	QuestionRadio    QuestionType = "radio"
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
)

// QuestionData carries the per-type validation constraints. Min and Max
// apply to number, range and slider questions; Options to radio questions.
type QuestionData struct {
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Question is one entry of a jam's application form.
type Question struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Type     QuestionType `json:"type"`
	Optional bool         `json:"optional"`
	Data     QuestionData `json:"data"`
}

// Answer pairs a question id with its validated value. The value's type
// depends on the question: bool for checkboxes, int for numeric questions,
// string otherwise, nil when an optional answer was omitted.
type Answer struct {
	Question string `json:"question"`
	Value    any    `json:"value"`
}

// Response is a persisted jam application. Approved starts false; approval
// happens out of band.
type Response struct {
	UserID   string   `json:"user_id"`
	JamID    int64    `json:"jam"`
	Approved bool     `json:"approved"`
	Answers  []Answer `json:"answers"`
}

// BanRecord is a jam signup ban, keyed by participant. Number counts down:
// -1 bans indefinitely, a positive value blocks that many further distinct
// jam applications, zero or below (other than -1) means the ban has run out.
type BanRecord struct {
	Participant    string  `json:"participant"`
	Number         int     `json:"number"`
	Reason         string  `json:"reason"`
	DecrementedFor []int64 `json:"decremented_for"`
}

// Charged reports whether this jam id has already been counted against the
// ban.
func (b BanRecord) Charged(jamID int64) bool {
	return slices.Contains(b.DecrementedFor, jamID)
}
