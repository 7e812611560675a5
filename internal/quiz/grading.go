package quiz

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
)

type Grade struct {
	Obtained int
	Total    int
	Results  []QuestionResult
}

// ParseAnswers checks that every key is the canonical id of a question of quiz
// and every order is a possible option position.
func ParseAnswers(quiz *catalog.Quiz, selected Answers) (map[uuid.UUID]int, error) {
	known := make(map[uuid.UUID]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		known[q.ID] = true
	}

	var fields []apperror.FieldError
	answers := make(map[uuid.UUID]int, len(selected))
	for key, order := range selected {
		field := "selected_options." + key
		id, err := uuid.Parse(key)
		if err != nil || !known[id] {
			fields = append(fields, apperror.FieldError{Field: field, Error: "question does not belong to this quiz"})
			continue
		}
		// Keys must be canonical so one question cannot be answered twice
		// under different spellings.
		if key != id.String() {
			fields = append(fields, apperror.FieldError{Field: field, Error: "question id must be in canonical form"})
			continue
		}
		if order < 1 || order > catalog.MaxOptionsPerQuestion {
			fields = append(fields, apperror.FieldError{
				Field: field,
				Error: fmt.Sprintf("option order must be between 1 and %d", catalog.MaxOptionsPerQuestion),
			})
			continue
		}
		answers[id] = order
	}

	if len(fields) > 0 {
		return nil, apperror.Validation("invalid quiz answers", fields...)
	}
	return answers, nil
}

// GradeAnswers scores answers by option order against Option.IsCorrect.
// Unanswered questions count as incorrect.
func GradeAnswers(questions []catalog.Question, answers map[uuid.UUID]int) Grade {
	g := Grade{Total: len(questions), Results: make([]QuestionResult, 0, len(questions))}

	for i := range questions {
		q := &questions[i]
		res := QuestionResult{QuestionID: q.ID}

		if correct, ok := q.CorrectOption(); ok {
			id := correct.ID
			res.CorrectOptionID = &id
			res.CorrectOrder = correct.Order
		}

		if order, answered := answers[q.ID]; answered {
			o := order
			res.SelectedOrder = &o
			if opt, ok := q.OptionAt(order); ok && opt.IsCorrect {
				res.IsCorrect = true
				g.Obtained++
			}
		}
		g.Results = append(g.Results, res)
	}
	return g
}
