package shell

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aanand-mishra/roster/internal/export"
	"github.com/aanand-mishra/roster/internal/roster"
	"github.com/aanand-mishra/roster/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// idForm and studentForm hold raw user input. The validate tags are the
// shell's only input rules: numeric fields must be present and numeric.
// Names and group are free text and may be empty.
type idForm struct {
	ID string `validate:"required,numeric"`
}

type studentForm struct {
	FirstName string
	LastName  string
	Age       string `validate:"required,numeric"`
	Group     string
}

// studentInput is a studentForm after conversion.
type studentInput struct {
	firstName string
	lastName  string
	age       int
	group     string
}

// ─────────────────────────────────────────────────────────────────────────────
// add handles menu item 1.
//
// Prompts, in order: first name, last name, age, group.
// On success prints the id the roster assigned.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Shell) add() error {
	in, ok, err := s.readStudent("")
	if err != nil || !ok {
		return err
	}

	id := s.store.Add(in.firstName, in.lastName, in.age, in.group)
	s.log.Info("student added", slog.Int("id", id))

	return s.reply(response.OK("Student added with ID %d.", id))
}

// remove handles menu item 2.
func (s *Shell) remove() error {
	id, ok, err := s.readID()
	if err != nil || !ok {
		return err
	}

	if !s.store.Remove(id) {
		return s.reply(response.Fail("Student with ID %d not found.", id))
	}

	s.log.Info("student removed", slog.Int("id", id))
	return s.reply(response.OK("Student removed."))
}

// edit handles menu item 3. Every field is asked for before the id is
// looked up; all four are replaced together.
func (s *Shell) edit() error {
	id, ok, err := s.readID()
	if err != nil || !ok {
		return err
	}

	in, ok, err := s.readStudent("New ")
	if err != nil || !ok {
		return err
	}

	if !s.store.Edit(id, in.firstName, in.lastName, in.age, in.group) {
		return s.reply(response.Fail("Student with ID %d not found.", id))
	}

	s.log.Info("student updated", slog.Int("id", id))
	return s.reply(response.OK("Student updated."))
}

// search handles menu item 4.
func (s *Shell) search() error {
	term, err := s.prompt("First or last name to search for: ")
	if err != nil {
		return err
	}

	return response.WriteStudents(s.out, s.store.Search(term), "No students found.")
}

// sort handles menu item 5. An unknown criterion is not an error: the
// roster is shown in its current order.
func (s *Shell) sort() error {
	raw, err := s.prompt("Sort by (firstName, lastName, age, group): ")
	if err != nil {
		return err
	}

	by := roster.ParseCriterion(raw)
	switch by {
	case roster.ByFirstName, roster.ByLastName, roster.ByAge, roster.ByGroup:
	default:
		if err := s.reply(response.OK("Unknown criterion %q, showing current order.", strings.TrimSpace(raw))); err != nil {
			return err
		}
	}

	return response.WriteStudents(s.out, s.store.SortView(by), "The roster is empty.")
}

// showAll handles menu item 6.
func (s *Shell) showAll() error {
	return response.WriteStudents(s.out, s.store.All(), "The roster is empty.")
}

// save handles menu item 7.
func (s *Shell) save() error {
	if err := s.store.Save(); err != nil {
		s.log.Error("save failed", slog.String("error", err.Error()))
		return s.reply(response.GeneralError(err))
	}

	s.log.Info("roster saved", slog.Int("count", s.store.Len()))
	return s.reply(response.OK("Saved %d students.", s.store.Len()))
}

// load handles menu item 8. It replaces whatever is in memory.
func (s *Shell) load() error {
	count, found, err := s.store.Load()
	if err != nil {
		s.log.Error("load failed", slog.String("error", err.Error()))
		return s.reply(response.GeneralError(err))
	}
	if !found {
		return s.reply(response.Fail("File not found."))
	}

	s.log.Info("roster loaded", slog.Int("count", count))
	return s.reply(response.OK("Loaded %d students.", count))
}

// exportXLSX handles menu item 9.
func (s *Shell) exportXLSX() error {
	students := s.store.All()

	if err := export.WriteXLSX(s.exportPath, students); err != nil {
		s.log.Error("export failed", slog.String("error", err.Error()))
		return s.reply(response.GeneralError(err))
	}

	s.log.Info("roster exported", slog.String("path", s.exportPath))
	return s.reply(response.OK("Exported %d students to %s.", len(students), s.exportPath))
}

// ─────────────────────────────────────────────────────────────────────────────
// Input helpers.
//
// Each returns (value, ok, err):
//
//	err != nil — input/output failed or ended; the caller returns it
//	!ok        — the user typed something invalid; a message was already
//	             printed and the caller returns nil to show the menu again
// ─────────────────────────────────────────────────────────────────────────────

func (s *Shell) readID() (int, bool, error) {
	raw, err := s.prompt("Student ID: ")
	if err != nil {
		return 0, false, err
	}

	form := idForm{ID: strings.TrimSpace(raw)}
	if ok, err := s.check(form); !ok || err != nil {
		return 0, false, err
	}

	id, ok, err := s.toInt("ID", form.ID)
	return id, ok, err
}

func (s *Shell) readStudent(labelPrefix string) (studentInput, bool, error) {
	var form studentForm
	fields := []struct {
		label string
		dst   *string
	}{
		{"first name: ", &form.FirstName},
		{"last name: ", &form.LastName},
		{"age: ", &form.Age},
		{"group: ", &form.Group},
	}

	for _, f := range fields {
		label := labelPrefix + f.label
		if labelPrefix == "" {
			label = strings.ToUpper(f.label[:1]) + f.label[1:]
		}

		v, err := s.prompt(label)
		if err != nil {
			return studentInput{}, false, err
		}
		*f.dst = v
	}

	form.Age = strings.TrimSpace(form.Age)
	if ok, err := s.check(form); !ok || err != nil {
		return studentInput{}, false, err
	}

	age, ok, err := s.toInt("Age", form.Age)
	if !ok || err != nil {
		return studentInput{}, false, err
	}

	return studentInput{
		firstName: form.FirstName,
		lastName:  form.LastName,
		age:       age,
		group:     form.Group,
	}, true, nil
}

// check validates form and prints the problems, if any.
func (s *Shell) check(form any) (bool, error) {
	err := s.validate.Struct(form)
	if err == nil {
		return true, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return false, s.reply(response.ValidationError(verrs))
	}
	return false, s.reply(response.GeneralError(err))
}

// toInt converts an already validated numeric string. "numeric" also
// admits decimals such as "1.5", and huge values overflow int; both are
// reported here.
func (s *Shell) toInt(field, raw string) (int, bool, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, s.reply(response.Fail("field %s must be a whole number", field))
	}
	return n, true, nil
}
