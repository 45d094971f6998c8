package response

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aanand-mishra/roster/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, OK("Student added with ID %d.", 3)))
	require.NoError(t, Write(&buf, Fail("Student with ID %d not found.", 9)))
	require.NoError(t, Write(&buf, GeneralError(errors.New("disk full"))))

	assert.Equal(t,
		"Student added with ID 3.\nError: Student with ID 9 not found.\nError: disk full\n",
		buf.String())
}

func TestValidationError(t *testing.T) {
	form := struct {
		ID    string `validate:"required,numeric"`
		Age   string `validate:"required,numeric"`
		Group string `validate:"max=3"`
	}{ID: "", Age: "abc", Group: "toolong"}

	err := validator.New().Struct(form)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	r := ValidationError(verrs)

	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t,
		"field ID is required, field Age must be a number, field Group is invalid",
		r.Message)
}

func TestWriteStudents(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteStudents(&buf, nil, "No students."))
	require.NoError(t, WriteStudents(&buf, []types.Student{
		{ID: 1, FirstName: "Anna", LastName: "Lee", Age: 20, Group: "G1"},
	}, "No students."))

	assert.Equal(t,
		"No students.\nID: 1, First name: Anna, Last name: Lee, Age: 20, Group: G1\n",
		buf.String())
}
