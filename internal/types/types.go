// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the roster core, the storage backends and the shell can all import
// types without depending on each other.
package types

import "fmt"

// Student represents one record in the roster.
//
// ID is assigned by the roster when the record is created and never
// changes afterwards. The remaining four fields are free-form: the
// roster performs no validation on them.
//
// The yaml:"..." tags control the key names used by the YAML storage
// backend. The flat-file backend does not use tags; it writes the
// fields positionally.
type Student struct {
	ID        int    `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Age       int    `yaml:"age"`
	Group     string `yaml:"group"`
}

// String renders the record the way the shell prints it, e.g.
//
//	ID: 1, First name: Anna, Last name: Lee, Age: 20, Group: G1
func (s Student) String() string {
	return fmt.Sprintf("ID: %d, First name: %s, Last name: %s, Age: %d, Group: %s",
		s.ID, s.FirstName, s.LastName, s.Age, s.Group)
}
