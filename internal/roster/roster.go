// Package roster implements the in-memory student roster: identifier
// assignment, mutation, search, sorted views and load/save through a
// storage.Storage backend.
//
// A Store is not safe for concurrent use. One user drives one operation
// at a time through the shell; there is no locking in this package.
package roster

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"
	"golang.org/x/text/cases"
)

// Store holds the roster in insertion order.
//
// Records are kept by value. Every method that hands records out returns
// copies, so callers can never change a record behind the store's back.
type Store struct {
	students []types.Student
	storage  storage.Storage
}

// New returns an empty Store that persists through st.
//
// Typical lifecycle:
//
//	store := roster.New(backend)
//	store.Load()   // optional
//	...            // Add / Remove / Edit / Search / SortView
//	store.Save()   // optional
func New(st storage.Storage) *Store {
	return &Store{
		students: make([]types.Student, 0),
		storage:  st,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Add appends a new student and returns the id assigned to it.
//
// The id is (largest id currently in the store) + 1, or 1 when the store
// is empty. Because the rule looks at the current maximum, a removed id
// comes back only if it was the largest one.
//
// No validation is done here: empty names and any integer age are
// accepted as-is.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Add(firstName, lastName string, age int, group string) int {
	id := s.nextID()

	s.students = append(s.students, types.Student{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
		Group:     group,
	})

	return id
}

func (s *Store) nextID() int {
	maxID := 0
	for _, st := range s.students {
		maxID = max(maxID, st.ID)
	}
	return maxID + 1
}

// indexOf returns the position of the first record with the given id,
// or -1.
func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.students, func(st types.Student) bool {
		return st.ID == id
	})
}

// Remove deletes the first record with the given id.
// It reports whether such a record existed. Other ids are untouched.
func (s *Store) Remove(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.students = slices.Delete(s.students, i, i+1)
	return true
}

// Edit overwrites all four mutable fields of the record with the given id.
// Partial updates are not supported. It reports whether the record existed.
func (s *Store) Edit(id int, firstName, lastName string, age int, group string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	st := &s.students[i]
	st.FirstName = firstName
	st.LastName = lastName
	st.Age = age
	st.Group = group

	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Search returns every student whose first or last name contains term,
// ignoring case. Results keep insertion order.
//
// HOW CASE-INSENSITIVE MATCHING WORKS:
// ─────────────────────────────────────
// Both sides are folded one rune at a time with cases.Fold, so "ANNA",
// "anna" and "Анна"/"АННА" compare equal. A rune whose folding would
// expand into several runes ("ß" -> "ss") is only lower-cased instead:
// the term "ss" does not match "Straße".
//
// An empty term is contained in every string, so it matches everyone.
// No match yields an empty (non-nil) slice.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Search(term string) []types.Student {
	fold := cases.Fold()
	needle := foldRunes(fold, term)

	found := make([]types.Student, 0)
	for _, st := range s.students {
		if strings.Contains(foldRunes(fold, st.FirstName), needle) ||
			strings.Contains(foldRunes(fold, st.LastName), needle) {
			found = append(found, st)
		}
	}

	return found
}

// foldRunes case-folds s rune by rune; the result has as many runes as s.
func foldRunes(fold cases.Caser, s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		f := fold.String(string(r))
		if utf8.RuneCountInString(f) != 1 {
			f = string(unicode.ToLower(r))
		}
		b.WriteString(f)
	}

	return b.String()
}

// Criterion names the field SortView orders by.
type Criterion string

const (
	ByFirstName Criterion = "firstName"
	ByLastName  Criterion = "lastName"
	ByAge       Criterion = "age"
	ByGroup     Criterion = "group"
)

// criterionAliases maps normalised user input to a Criterion.
// The Russian words are accepted for rosters kept by Russian-speaking staff.
var criterionAliases = map[string]Criterion{
	"firstname":  ByFirstName,
	"first_name": ByFirstName,
	"first name": ByFirstName,
	"first":      ByFirstName,
	"name":       ByFirstName,
	"имя":        ByFirstName,

	"lastname":  ByLastName,
	"last_name": ByLastName,
	"last name": ByLastName,
	"last":      ByLastName,
	"surname":   ByLastName,
	"фамилия":   ByLastName,

	"age":     ByAge,
	"возраст": ByAge,

	"group":  ByGroup,
	"группа": ByGroup,
}

// ParseCriterion turns free text into a Criterion. Matching ignores case
// and surrounding spaces. Text that names no field comes back unchanged;
// SortView treats such a criterion as "keep insertion order".
func ParseCriterion(raw string) Criterion {
	key := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := criterionAliases[key]; ok {
		return c
	}
	return Criterion(raw)
}

// ─────────────────────────────────────────────────────────────────────────────
// SortView returns a new slice ordered ascending by the given criterion.
//
// Strings compare byte-wise (strings.Compare), so the result does not
// depend on the machine's locale. Age compares numerically.
//
// slices.SortStableFunc keeps records with equal keys in their insertion
// order. An unknown criterion returns a plain copy in insertion order.
// The store's own order is never changed.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) SortView(by Criterion) []types.Student {
	view := s.All()

	var compare func(a, b types.Student) int
	switch by {
	case ByFirstName:
		compare = func(a, b types.Student) int { return strings.Compare(a.FirstName, b.FirstName) }
	case ByLastName:
		compare = func(a, b types.Student) int { return strings.Compare(a.LastName, b.LastName) }
	case ByAge:
		compare = func(a, b types.Student) int { return cmp.Compare(a.Age, b.Age) }
	case ByGroup:
		compare = func(a, b types.Student) int { return strings.Compare(a.Group, b.Group) }
	default:
		return view
	}

	slices.SortStableFunc(view, compare)
	return view
}

// All returns a copy of every record in insertion order.
func (s *Store) All() []types.Student {
	return slices.Clone(s.students)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.students)
}

// ─────────────────────────────────────────────────────────────────────────────
// Load replaces the whole collection with what the backend has saved.
//
// Return values:
//
//	count — number of records now in the store
//	found — false when the backend has nothing saved (storage.ErrNoData);
//	        the in-memory collection is then left as it was
//	err   — any other backend failure; the collection is left as it was
//
// Malformed records never show up here: the backend drops them.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Load() (count int, found bool, err error) {
	students, err := s.storage.Load()
	if errors.Is(err, storage.ErrNoData) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("roster.Load: %w", err)
	}

	s.students = make([]types.Student, 0, len(students))
	s.students = append(s.students, students...)

	return len(s.students), true, nil
}

// Save writes every record, in insertion order, over whatever the backend
// held before.
func (s *Store) Save() error {
	if err := s.storage.Save(s.All()); err != nil {
		return fmt.Errorf("roster.Save: %w", err)
	}
	return nil
}
