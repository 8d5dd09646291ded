package models

// Unit is an organizational sub-division that owns projects and submits
// progress reports. Username/password form the unit's login credential.
type Unit struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	ShortName string `json:"shortName" db:"short_name"`
	Username  string `json:"username" db:"username"`
	Password  string `json:"password,omitempty" db:"password"`
}
