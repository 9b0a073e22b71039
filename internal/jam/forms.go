package jam

import (
	"fmt"
	"net/mail"
	"slices"
	"strconv"

	dErrors "warden/pkg/domain-errors"
)

// ValidateAnswers checks submitted values against the form's questions and
// returns the typed answers in question order. Values are keyed by question
// id; a missing key means the question was not answered at all.
//
// Validation stops at the first failing question. Optional questions may be
// omitted; an omitted numeric or text answer is recorded with a nil value.
func ValidateAnswers(questions []Question, values map[string]string) ([]Answer, error) {
	answers := make([]Answer, 0, len(questions))

	for _, question := range questions {
		value, present := values[question.ID]
		if !question.Optional && !present {
			return nil, badAnswer(question, "answer is required")
		}

		answer := Answer{Question: question.ID}

		switch question.Type {
		case QuestionCheckbox:
			if value == "on" {
				answer.Value = true
			} else if !question.Optional {
				return nil, badAnswer(question, "must be checked")
			} else {
				answer.Value = false
			}

		case QuestionEmail:
			if value != "" {
				if _, err := mail.ParseAddress(value); err != nil {
					return nil, badAnswer(question, "not a valid email address")
				}
			}
			answer.Value = value

		case QuestionNumber, QuestionRange, QuestionSlider:
			if present {
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, badAnswer(question, "not a number")
				}
				if n > question.Data.Max || n < question.Data.Min {
					return nil, badAnswer(question,
						fmt.Sprintf("must be between %d and %d", question.Data.Min, question.Data.Max))
				}
				answer.Value = n
			}

		case QuestionRadio:
			if value != "" && !slices.Contains(question.Data.Options, value) {
				return nil, badAnswer(question, "not one of the available options")
			}
			answer.Value = value

		case QuestionText, QuestionTextarea:
			answer.Value = value
		}

		answers = append(answers, answer)
	}
	return answers, nil
}

func badAnswer(question Question, reason string) error {
	return dErrors.New(dErrors.CodeBadRequest,
		fmt.Sprintf("question %q: %s", question.ID, reason))
}
