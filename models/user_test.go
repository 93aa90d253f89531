// file: models/user_test.go
package models

import "testing"

func ptr(f float64) *float64 { return &f }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"integral cohort", User{Name: "홍길동", Cohort: ptr(23), Session: SessionGuitar}, "23G 홍길동"},
		{"half cohort", User{Name: "김", Cohort: ptr(23.5), Session: SessionDrum}, "23.5D 김"},
		{"no cohort", User{Name: "이", Session: SessionVocal}, "NoneV 이"},
		{"unknown session", User{Name: "박", Cohort: ptr(1), Session: "piano"}, "1? 박"},
		{"admin", User{Name: "운영", Session: SessionAdmin, Role: RoleAdmin}, "관리자 (운영)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSession(t *testing.T) {
	if _, ok := ParseSession("bass"); !ok {
		t.Error("bass should be accepted")
	}
	// admin is assigned, never chosen at registration
	if _, ok := ParseSession("admin"); ok {
		t.Error("admin must not be a selectable session")
	}
	if _, ok := ParseSession("Bass"); ok {
		t.Error("sessions are lower case")
	}
}

func TestPasswordHash(t *testing.T) {
	u := User{Password: "correct horse"}
	if err := u.hashPassword(); err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if u.Password == "correct horse" {
		t.Fatal("password stored in plain text")
	}
	if !u.CheckPassword("correct horse") {
		t.Error("CheckPassword rejected the right password")
	}
	if u.CheckPassword("wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
