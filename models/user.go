// file: models/user.go
package models

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string
type UserSession string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"

	SessionVocal    UserSession = "vocal"
	SessionGuitar   UserSession = "guitar"
	SessionBass     UserSession = "bass"
	SessionKeyboard UserSession = "keyboard"
	SessionDrum     UserSession = "drum"
	SessionAdmin    UserSession = "admin"
)

// ParseSession validates the part a user registers with.
func ParseSession(s string) (UserSession, bool) {
	switch UserSession(s) {
	case SessionVocal, SessionGuitar, SessionBass, SessionKeyboard, SessionDrum:
		return UserSession(s), true
	}
	return "", false
}

// Initial is the one-letter part code used in display names.
func (s UserSession) Initial() string {
	switch s {
	case SessionVocal:
		return "V"
	case SessionGuitar:
		return "G"
	case SessionBass:
		return "B"
	case SessionKeyboard:
		return "K"
	case SessionDrum:
		return "D"
	case SessionAdmin:
		return "A"
	}
	return "?"
}

type User struct {
	ID           uint32      `gorm:"primarykey" json:"id"`
	Username     string      `gorm:"size:150;unique;not null" json:"username"`
	Password     string      `gorm:"size:255;not null" json:"-"`
	Name         string      `gorm:"size:100;not null;index" json:"name"`
	Cohort       *float64    `json:"cohort,omitempty"`
	Session      UserSession `gorm:"size:20;not null" json:"session"`
	Role         UserRole    `gorm:"size:20;not null;default:'member'" json:"role"`
	ScheduleJSON string      `gorm:"column:schedule_json;type:text" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (User) TableName() string {
	return "myr_user"
}

// BeforeCreate hashes the plain password a new user was built with.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	return u.hashPassword()
}

// BeforeUpdate re-hashes only when the password column is part of the update.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Password") {
		return u.hashPassword()
	}
	return nil
}

func (u *User) hashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName mirrors how members are listed in the club: admins by name, everyone
// else as "<cohort><session initial> <name>".
func (u *User) DisplayName() string {
	if u.IsAdmin() {
		return "관리자 (" + u.Name + ")"
	}
	return FormatCohort(u.Cohort) + u.Session.Initial() + " " + u.Name
}

// FormatCohort prints 23 for 23.0 and 23.5 for 23.5.
func FormatCohort(c *float64) string {
	if c == nil {
		return "None"
	}
	if *c == float64(int64(*c)) {
		return strconv.FormatInt(int64(*c), 10)
	}
	return strconv.FormatFloat(*c, 'f', -1, 64)
}
