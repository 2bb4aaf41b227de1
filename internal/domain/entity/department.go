package entity

import "strings"

// Departments is the fixed list of departments a doctor can be assigned to
var Departments = []string{
	"Cardiology",
	"Dermatology",
	"Emergency Medicine",
	"ENT",
	"General Medicine",
	"Gynecology",
	"Neurology",
	"Oncology",
	"Ophthalmology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"Radiology",
}

// IsDepartment reports whether name is one of Departments
func IsDepartment(name string) bool {
	name = strings.TrimSpace(name)
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}
