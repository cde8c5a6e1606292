package domain

import "testing"

func sampleStudent() Subject {
	return Subject{
		SubjectID:       7,
		ExternalID:      "STU-0007",
		Name:            "Dana Cruz",
		Role:            RoleStudent,
		GuardianContact: "08120000007",
	}
}

func TestSubjectIdentity(t *testing.T) {
	// Value receiver: callable straight off a returned value.
	identity := sampleStudent().Identity()

	if identity.ID != "STU-0007" {
		t.Errorf("ID = %q, want external id", identity.ID)
	}
	if identity.DisplayName != "Dana Cruz" {
		t.Errorf("DisplayName = %q", identity.DisplayName)
	}
	if identity.GuardianContact != "08120000007" {
		t.Errorf("GuardianContact = %q", identity.GuardianContact)
	}
}

func TestSubjectIdentityFallsBackToInternalID(t *testing.T) {
	s := sampleStudent()
	s.ExternalID = ""

	if got := s.Identity().ID; got != "7" {
		t.Errorf("ID = %q, want internal id fallback", got)
	}
}

func TestSubjectMatches(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "external id", code: "STU-0007", want: true},
		{name: "internal id", code: "7", want: true},
		{name: "case mismatch", code: "stu-0007", want: false},
		{name: "unrelated code", code: "STU-0008", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sampleStudent().Matches(tt.code); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
