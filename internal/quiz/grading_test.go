package quiz_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/quiz"
)

func question(correct int) catalog.Question {
	q := catalog.Question{ID: uuid.New()}
	for order := 1; order <= 4; order++ {
		q.Options = append(q.Options, catalog.Option{ID: uuid.New(), Order: order, IsCorrect: order == correct})
	}
	return q
}

func TestGradeAnswers(t *testing.T) {
	questions := []catalog.Question{question(1), question(2), question(3)}

	t.Run("OneOfThree", func(t *testing.T) {
		g := quiz.GradeAnswers(questions, map[uuid.UUID]int{
			questions[0].ID: 1,
			questions[1].ID: 4,
		})

		assert.Equal(t, 1, g.Obtained)
		assert.Equal(t, 3, g.Total)
		require.Len(t, g.Results, 3)

		assert.True(t, g.Results[0].IsCorrect)
		assert.False(t, g.Results[1].IsCorrect)
		assert.Equal(t, 2, g.Results[1].CorrectOrder)
		require.NotNil(t, g.Results[1].SelectedOrder)
		assert.Equal(t, 4, *g.Results[1].SelectedOrder)
		assert.Nil(t, g.Results[2].SelectedOrder)
	})

	t.Run("AllCorrect", func(t *testing.T) {
		g := quiz.GradeAnswers(questions, map[uuid.UUID]int{
			questions[0].ID: 1,
			questions[1].ID: 2,
			questions[2].ID: 3,
		})
		assert.Equal(t, 3, g.Obtained)
	})

	t.Run("NoQuestions", func(t *testing.T) {
		g := quiz.GradeAnswers(nil, nil)
		assert.Zero(t, g.Obtained)
		assert.Zero(t, g.Total)
		assert.Empty(t, g.Results)
	})

	t.Run("CorrectnessComesFromOptionFlag", func(t *testing.T) {
		q := question(2)
		q.CorrectOptionIndex = 1

		g := quiz.GradeAnswers([]catalog.Question{q}, map[uuid.UUID]int{q.ID: 2})
		assert.Equal(t, 1, g.Obtained)
	})
}

func TestParseAnswers(t *testing.T) {
	q := question(1)
	qz := &catalog.Quiz{Questions: []catalog.Question{q}}

	t.Run("Valid", func(t *testing.T) {
		answers, err := quiz.ParseAnswers(qz, quiz.Answers{q.ID.String(): 3})
		require.NoError(t, err)
		assert.Equal(t, 3, answers[q.ID])
	})

	tests := []struct {
		name    string
		answers quiz.Answers
	}{
		{"UnknownQuestion", quiz.Answers{uuid.NewString(): 1}},
		{"MalformedKey", quiz.Answers{"not-a-uuid": 1}},
		{"OrderTooHigh", quiz.Answers{q.ID.String(): 5}},
		{"OrderTooLow", quiz.Answers{q.ID.String(): 0}},
		{"UppercaseKey", quiz.Answers{strings.ToUpper(q.ID.String()): 1}},
		{"URNKey", quiz.Answers{"urn:uuid:" + q.ID.String(): 1}},
		{"BracedKey", quiz.Answers{"{" + q.ID.String() + "}": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quiz.ParseAnswers(qz, tt.answers)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestParseAnswersSameQuestionTwoSpellings(t *testing.T) {
	q := question(1)
	qz := &catalog.Quiz{Questions: []catalog.Question{q}}
	selected := quiz.Answers{
		q.ID.String():                  1,
		strings.ToUpper(q.ID.String()): 2,
	}

	for i := 0; i < 50; i++ {
		_, err := quiz.ParseAnswers(qz, selected)
		require.Error(t, err)

		var appErr *apperror.Error
		require.ErrorAs(t, err, &appErr)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "selected_options."+strings.ToUpper(q.ID.String()), appErr.Fields[0].Field)
	}
}
