package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/validation"
)

type optionInput struct {
	Text string `json:"option_text" validate:"notblank"`
}

type questionInput struct {
	Text    string        `json:"question_text" validate:"required"`
	Options []optionInput `json:"options" validate:"required,min=1,max=4,dive"`
	Method  string        `json:"method" validate:"omitempty,oneof=card stripe"`
}

func TestStruct(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		err := validation.Struct(questionInput{
			Text:    "2 + 2?",
			Options: []optionInput{{Text: "4"}},
		})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := validation.Struct(questionInput{
			Options: []optionInput{{Text: "  "}},
			Method:  "cash",
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))

		got := map[string]string{}
		for _, f := range appErr.Fields {
			got[f.Field] = f.Error
		}
		assert.Equal(t, "this field is required", got["question_text"])
		assert.Equal(t, "option_text must not be blank", got["options[0].option_text"])
		assert.Contains(t, got, "method")
	})

	t.Run("too many options", func(t *testing.T) {
		opts := make([]optionInput, 5)
		for i := range opts {
			opts[i].Text = "x"
		}
		err := validation.Struct(questionInput{Text: "q", Options: opts})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}
