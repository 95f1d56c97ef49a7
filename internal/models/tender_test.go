package models

import (
	"testing"
	"time"
)

func invitesWithAccepted(accepted, total int) []Invite {
	invites := make([]Invite, 0, total)
	for i := 0; i < total; i++ {
		status := PendingInvite
		if i < accepted {
			status = AcceptedInvite
		}
		invites = append(invites, Invite{
			UserName:  "user",
			UserPhone: "+70000000000",
			Status:    status,
			UpdatedAt: time.Now(),
		})
	}
	return invites
}

func TestDeriveTenderStatus(t *testing.T) {
	tests := []struct {
		name     string
		accepted int
		total    int
		quota    int
		current  TenderStatus
		want     TenderStatus
	}{
		{"quota reached exactly", 2, 3, 2, OpenTender, FullTender},
		{"one short of quota", 1, 3, 2, OpenTender, OpenTender},
		{"quota one boundary", 1, 1, 1, OpenTender, FullTender},
		{"quota one not reached", 0, 1, 1, OpenTender, OpenTender},
		{"zero quota is always full", 0, 2, 0, OpenTender, FullTender},
		{"negative quota is always full", 0, 0, -1, OpenTender, FullTender},
		{"closed stays closed below quota", 1, 3, 2, ClosedTender, ClosedTender},
		{"quota reached wins over closed", 2, 2, 2, ClosedTender, FullTender},
		{"full downgrades to open when acceptances drop", 1, 3, 2, FullTender, OpenTender},
		{"no invites", 0, 0, 1, OpenTender, OpenTender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTenderStatus(invitesWithAccepted(tt.accepted, tt.total), tt.quota, tt.current)
			if got != tt.want {
				t.Errorf("DeriveTenderStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAcceptedCountIgnoresOtherStatuses(t *testing.T) {
	invites := []Invite{
		{Status: AcceptedInvite},
		{Status: PendingInvite},
		{Status: RejectedInvite},
		{Status: AcceptedInvite},
	}
	if got := AcceptedCount(invites); got != 2 {
		t.Errorf("AcceptedCount() = %d, want 2", got)
	}
}

func TestValidateInvites(t *testing.T) {
	valid := []InviteRequest{
		{UserID: "u1", UserName: "Анна", UserPhone: "+79990000001"},
		{UserID: "u2", UserName: "Борис", UserPhone: "+79990000002"},
		{UserName: "Гость", UserPhone: "+79990000003"},
		{UserName: "Ещё гость", UserPhone: "+79990000004"},
	}
	if err := ValidateInvites(valid); err != nil {
		t.Errorf("ValidateInvites() unexpected error: %v", err)
	}

	duplicate := []InviteRequest{
		{UserID: "u1", UserName: "Анна", UserPhone: "+79990000001"},
		{UserID: "u1", UserName: "Анна", UserPhone: "+79990000001"},
	}
	if err := ValidateInvites(duplicate); err == nil {
		t.Error("ValidateInvites() expected error for duplicate userId")
	}
}

func TestInviteStatusIsDecision(t *testing.T) {
	if !AcceptedInvite.IsDecision() || !RejectedInvite.IsDecision() {
		t.Error("accepted and rejected must be valid decisions")
	}
	if PendingInvite.IsDecision() {
		t.Error("pending must not be a valid decision target")
	}
}
