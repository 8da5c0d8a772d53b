package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/pkg/response"
)

func TestCanAccess(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)

	owner := createUser(t, db, "moa@example.com", "secret123", "moa")
	member := createUser(t, db, "bet@example.com", "secret123", "bet")
	stranger := createUser(t, db, "labo@example.com", "secret123", "labo")
	project := createProject(t, db, owner, "Villa A")

	if _, err := access.Invite(project.ID, owner.ID, &InviteRequest{Email: member.Email}); err != nil {
		t.Fatalf("invite: %v", err)
	}

	tests := []struct {
		name     string
		userID   uint
		expected bool
	}{
		{"owner", owner.ID, true},
		{"member", member.ID, true},
		{"stranger", stranger.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := access.CanAccess(project.ID, tt.userID)
			if err != nil {
				t.Fatalf("CanAccess() error = %v", err)
			}
			if ok != tt.expected {
				t.Errorf("CanAccess() = %v, expected %v", ok, tt.expected)
			}
		})
	}
}

func TestCanAccess_MissingProject(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)
	user := createUser(t, db, "moa@example.com", "secret123", "moa")

	ok, err := access.CanAccess(9999, user.ID)
	if err != nil {
		t.Fatalf("CanAccess() error = %v", err)
	}
	if ok {
		t.Error("CanAccess() on missing project should be false")
	}
}

func TestInvite_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)

	owner := createUser(t, db, "moa@example.com", "secret123", "moa")
	invitee := createUser(t, db, "arc@example.com", "secret123", "architecte")
	project := createProject(t, db, owner, "Villa A")

	first, err := access.Invite(project.ID, owner.ID, &InviteRequest{Email: invitee.Email})
	if err != nil {
		t.Fatalf("first Invite() error = %v", err)
	}

	second, err := access.Invite(project.ID, owner.ID, &InviteRequest{Email: invitee.Email})
	if err != nil {
		t.Fatalf("second Invite() should be a no-op, got error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second Invite() returned member %d, expected existing %d", second.ID, first.ID)
	}

	var count int64
	db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, invitee.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 membership row, got %d", count)
	}
}

func TestInvite_DefaultRoleInProject(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)

	owner := createUser(t, db, "moa@example.com", "secret123", "moa")
	invitee := createUser(t, db, "topo@example.com", "secret123", "topographe")
	project := createProject(t, db, owner, "Villa A")

	member, err := access.Invite(project.ID, owner.ID, &InviteRequest{Email: invitee.Email})
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if member.RoleInProject != models.RoleTopographe {
		t.Errorf("RoleInProject = %q, expected invitee's global role %q", member.RoleInProject, models.RoleTopographe)
	}
}

func TestInvite_ExplicitRoleInProject(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)

	owner := createUser(t, db, "moa@example.com", "secret123", "moa")
	invitee := createUser(t, db, "bet@example.com", "secret123", "bet")
	project := createProject(t, db, owner, "Villa A")

	member, err := access.Invite(project.ID, owner.ID, &InviteRequest{
		Email:         invitee.Email,
		RoleInProject: "AMOA",
	})
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if member.RoleInProject != models.RoleAMOA {
		t.Errorf("RoleInProject = %q, expected %q", member.RoleInProject, models.RoleAMOA)
	}
}

func TestInvite_Errors(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)

	owner := createUser(t, db, "moa@example.com", "secret123", "moa")
	other := createUser(t, db, "other@example.com", "secret123", "moa")
	invitee := createUser(t, db, "arc@example.com", "secret123", "architecte")
	project := createProject(t, db, owner, "Villa A")

	tests := []struct {
		name       string
		projectID  uint
		inviterID  uint
		email      string
		wantStatus int
	}{
		{"missing project", 9999, owner.ID, invitee.Email, 404},
		{"non-owner inviter", project.ID, other.ID, invitee.Email, 403},
		{"unknown invitee email", project.ID, owner.ID, "ghost@example.com", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := access.Invite(tt.projectID, tt.inviterID, &InviteRequest{Email: tt.email})
			var appErr *response.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, expected %d", appErr.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestListMembers(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)

	owner := createUser(t, db, "moa@example.com", "secret123", "moa")
	member := createUser(t, db, "arc@example.com", "secret123", "architecte")
	stranger := createUser(t, db, "labo@example.com", "secret123", "labo")
	project := createProject(t, db, owner, "Villa A")

	if _, err := access.Invite(project.ID, owner.ID, &InviteRequest{Email: member.Email}); err != nil {
		t.Fatalf("invite: %v", err)
	}

	members, err := access.ListMembers(project.ID, member.ID)
	if err != nil {
		t.Fatalf("ListMembers() as member error = %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].User == nil || members[0].User.Email != member.Email {
		t.Error("member list should include user info")
	}

	if _, err := access.ListMembers(project.ID, stranger.ID); err == nil {
		t.Error("ListMembers() as stranger should be forbidden")
	}
}

func TestInvite_ConcurrentOneMembership(t *testing.T) {
	db := setupTestDB(t)
	access := NewAccessService(db)

	owner := createUser(t, db, "moa@example.com", "secret123", "moa")
	invitee := createUser(t, db, "bet@example.com", "secret123", "bet")
	project := createProject(t, db, owner, "Villa A")

	// Two simultaneous invites of the same user both succeed; the unique
	// pair index resolves the loser to the winner's row
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = access.Invite(project.ID, owner.ID, &InviteRequest{Email: invitee.Email})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("concurrent Invite() #%d error = %v", i+1, err)
		}
	}

	var count int64
	db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, invitee.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 membership row, got %d", count)
	}
}
