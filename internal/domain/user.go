package domain

import "time"

// User skill levels, self-declared at registration and used to tune tutor
// replies.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// A registered learner account. PasswordHash is a bcrypt digest and never
// leaves the service.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	SkillLevel   string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// ValidSkillLevel reports whether s is one of the accepted levels.
func ValidSkillLevel(s string) bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}
