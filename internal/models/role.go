package models

import "strings"

// Role distinguishes the two account populations. Students and teachers
// are stored in separate tables and never share identifiers.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

// ParseRole normalizes raw role input to a known Role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleTeacher:
		return RoleTeacher, true
	}
	return "", false
}
