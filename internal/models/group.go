package models

// ProjectGroup is a label used to cluster projects in menus. Deleting a
// group ungroups its members, it never deletes them.
type ProjectGroup struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
