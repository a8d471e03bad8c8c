package services_test

import (
	"context"
	"testing"

	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"
	"github.com/Hllyys/FullStackCase/internal/core/domain"
	"github.com/Hllyys/FullStackCase/internal/core/services"
)

type userFixture struct {
	users  *fakeUserRepo
	tokens *fakeTokenRepo
	svc    *services.UserService
}

func newUserFixture() *userFixture {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	return &userFixture{
		users:  users,
		tokens: tokens,
		svc:    services.NewUserService(users, newFakeRoleRepo(), tokens),
	}
}

func (f *userFixture) addUser(t *testing.T, fullName, email string, managerID *uint) *models.User {
	t.Helper()
	u := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhashnotarealhash",
		RoleID:       models.RoleStaff,
		ManagerID:    managerID,
		IsActive:     true,
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return u
}

func TestListUsersNormalizesQuery(t *testing.T) {
	f := newUserFixture()

	var captured repositories.ListQuery
	f.users.listFn = func(_ context.Context, q repositories.ListQuery) ([]*models.User, int64, error) {
		captured = q
		return nil, 0, nil
	}

	out, err := f.svc.ListUsers(context.Background(), &services.ListUsersInput{
		Page: 0,
		Size: 0,
		Filters: repositories.ListFilters{
			FullName: "ada",
			Status:   "active",
		},
	})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	if captured.Offset != 0 {
		t.Errorf("offset = %d, want 0", captured.Offset)
	}
	if captured.Limit != 20 {
		t.Errorf("limit = %d, want default 20", captured.Limit)
	}
	if captured.SortBy != "createdAt" {
		t.Errorf("sortBy = %q, want createdAt", captured.SortBy)
	}
	if captured.SortOrder != "desc" {
		t.Errorf("sortOrder = %q, want desc", captured.SortOrder)
	}
	if captured.Filters.FullName != "ada" || captured.Filters.Status != "active" {
		t.Errorf("filters not forwarded: %+v", captured.Filters)
	}

	if out.Pagination.Page != 1 {
		t.Errorf("page = %d, want 1", out.Pagination.Page)
	}
	if out.Pagination.TotalPages != 1 {
		t.Errorf("totalPages = %d, want floor of 1", out.Pagination.TotalPages)
	}
}

func TestListUsersPaginationMeta(t *testing.T) {
	f := newUserFixture()
	f.users.listFn = func(_ context.Context, q repositories.ListQuery) ([]*models.User, int64, error) {
		if q.Offset != 20 {
			t.Errorf("offset = %d, want 20", q.Offset)
		}
		return nil, 45, nil
	}

	out, err := f.svc.ListUsers(context.Background(), &services.ListUsersInput{Page: 2, Size: 20})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if out.Pagination.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", out.Pagination.TotalPages)
	}
	if out.Pagination.TotalItems != 45 {
		t.Errorf("totalItems = %d, want 45", out.Pagination.TotalItems)
	}
}

func TestListUsersNestsWithinPage(t *testing.T) {
	f := newUserFixture()
	boss := f.addUser(t, "Boss", "boss@example.com", nil)
	report := f.addUser(t, "Report", "report@example.com", &boss.ID)
	offPage := uint(99)
	stray := f.addUser(t, "Stray", "stray@example.com", &offPage)

	out, err := f.svc.ListUsers(context.Background(), &services.ListUsersInput{Depth: 1})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	if len(out.Data) != 2 {
		t.Fatalf("roots = %d, want 2 (report nests, stray stays top-level)", len(out.Data))
	}
	if out.Data[0].ID != boss.ID {
		t.Errorf("first root = %d, want boss %d", out.Data[0].ID, boss.ID)
	}
	if len(out.Data[0].Children) != 1 || out.Data[0].Children[0].ID != report.ID {
		t.Errorf("boss children = %+v, want [report]", out.Data[0].Children)
	}
	if out.Data[1].ID != stray.ID {
		t.Errorf("second root = %d, want stray %d", out.Data[1].ID, stray.ID)
	}
	if out.Data[1].Children != nil {
		t.Errorf("stray children = %+v, want absent", out.Data[1].Children)
	}
}

func TestListUsersFlatDepthZero(t *testing.T) {
	f := newUserFixture()
	boss := f.addUser(t, "Boss", "boss@example.com", nil)
	f.addUser(t, "Report", "report@example.com", &boss.ID)
	f.addUser(t, "Other", "other@example.com", &boss.ID)

	out, err := f.svc.ListUsers(context.Background(), &services.ListUsersInput{Depth: 0})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(out.Data) != 3 {
		t.Fatalf("rows = %d, want 3 flat rows", len(out.Data))
	}
	for _, node := range out.Data {
		if node.Children != nil {
			t.Errorf("node %d has children in flat mode", node.ID)
		}
	}
}

func TestUpdateUserManagerValidation(t *testing.T) {
	f := newUserFixture()
	alice := f.addUser(t, "Alice", "alice@example.com", nil)
	bob := f.addUser(t, "Bob", "bob@example.com", &alice.ID)

	// Self-management.
	if _, err := f.svc.UpdateUser(context.Background(), alice.ID, &services.UpdateUserInput{ManagerID: &alice.ID}); err != domain.ErrSelfManager {
		t.Errorf("self manager err = %v, want ErrSelfManager", err)
	}

	// Bob reports to Alice, so Alice cannot report to Bob.
	if _, err := f.svc.UpdateUser(context.Background(), alice.ID, &services.UpdateUserInput{ManagerID: &bob.ID}); err != domain.ErrManagerCycle {
		t.Errorf("cycle err = %v, want ErrManagerCycle", err)
	}

	ghost := uint(404)
	if _, err := f.svc.UpdateUser(context.Background(), alice.ID, &services.UpdateUserInput{ManagerID: &ghost}); err != domain.ErrManagerNotFound {
		t.Errorf("unknown manager err = %v, want ErrManagerNotFound", err)
	}

	// Clearing via zero succeeds.
	zero := uint(0)
	resp, err := f.svc.UpdateUser(context.Background(), bob.ID, &services.UpdateUserInput{ManagerID: &zero})
	if err != nil {
		t.Fatalf("clear manager: %v", err)
	}
	if resp.ManagerID != nil {
		t.Errorf("managerId = %v, want cleared", *resp.ManagerID)
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	f := newUserFixture()
	f.addUser(t, "Alice", "alice@example.com", nil)
	bob := f.addUser(t, "Bob", "bob@example.com", nil)

	taken := "Alice@Example.com"
	if _, err := f.svc.UpdateUser(context.Background(), bob.ID, &services.UpdateUserInput{Email: &taken}); err != domain.ErrEmailInUse {
		t.Errorf("err = %v, want ErrEmailInUse", err)
	}

	// Re-submitting the current email is not a conflict.
	own := "BOB@example.com"
	if _, err := f.svc.UpdateUser(context.Background(), bob.ID, &services.UpdateUserInput{Email: &own}); err != nil {
		t.Errorf("same email err = %v, want nil", err)
	}
}

func TestDeleteUserDetachesReports(t *testing.T) {
	f := newUserFixture()
	boss := f.addUser(t, "Boss", "boss@example.com", nil)
	report := f.addUser(t, "Report", "report@example.com", &boss.ID)

	f.tokens.rows = append(f.tokens.rows, &models.RefreshToken{ID: 1, UserID: boss.ID, TokenHash: "h"})

	if err := f.svc.DeleteUser(context.Background(), boss.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := f.svc.GetUser(context.Background(), boss.ID); err != domain.ErrUserNotFound {
		t.Errorf("deleted user err = %v, want ErrUserNotFound", err)
	}

	kept, err := f.users.GetByID(context.Background(), report.ID)
	if err != nil {
		t.Fatalf("report lookup: %v", err)
	}
	if kept.ManagerID != nil {
		t.Errorf("report managerId = %v, want detached", *kept.ManagerID)
	}

	if len(f.tokens.rows) != 0 {
		t.Errorf("refresh tokens remaining = %d, want 0", len(f.tokens.rows))
	}

	if err := f.svc.DeleteUser(context.Background(), boss.ID); err != domain.ErrUserNotFound {
		t.Errorf("second delete err = %v, want ErrUserNotFound", err)
	}
}

func TestCreateUserDefaults(t *testing.T) {
	f := newUserFixture()

	resp, err := f.svc.CreateUser(context.Background(), &services.CreateUserInput{
		FullName: "New Hire",
		Email:    "HIRE@example.com",
		Password: "secret123",
		RoleID:   models.RoleStaff,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if resp.Email != "hire@example.com" {
		t.Errorf("email = %q, want lower-cased", resp.Email)
	}
	if !resp.IsActive {
		t.Error("isActive should default to true")
	}
}

func TestGetAllReportsTransitive(t *testing.T) {
	f := newUserFixture()
	a := f.addUser(t, "A", "a@example.com", nil)
	b := f.addUser(t, "B", "b@example.com", &a.ID)
	c := f.addUser(t, "C", "c@example.com", &b.ID)
	d := f.addUser(t, "D", "d@example.com", &a.ID)
	f.addUser(t, "E", "e@example.com", nil) // unrelated

	reports, err := f.svc.GetAllReports(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetAllReports: %v", err)
	}

	got := make([]uint, len(reports))
	for i, r := range reports {
		got[i] = r.ID
	}
	want := []uint{b.ID, d.ID, c.ID}
	if len(got) != len(want) {
		t.Fatalf("report ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("report ids = %v, want %v (level order)", got, want)
		}
	}
}

func TestGetAllReportsCycleSafe(t *testing.T) {
	f := newUserFixture()
	a := f.addUser(t, "A", "a@example.com", nil)
	b := f.addUser(t, "B", "b@example.com", &a.ID)

	// Corrupt the data into a two-node cycle.
	stored, _ := f.users.GetByID(context.Background(), a.ID)
	stored.ManagerID = &b.ID
	if err := f.users.Update(context.Background(), stored); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reports, err := f.svc.GetAllReports(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetAllReports: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != b.ID {
		t.Errorf("reports = %+v, want only B once", reports)
	}
}
