package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/senyabanana/shift-market/internal/models"
	"github.com/senyabanana/shift-market/internal/repository"
)

// fakeUserRepository - хранилище пользователей в памяти для тестов сервисов.
type fakeUserRepository struct {
	users map[string]*models.User
}

func newFakeUserRepository(users ...models.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: make(map[string]*models.User)}
	for i := range users {
		user := users[i]
		repo.users[user.ID] = &user
	}
	return repo
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, userReq models.UserRequest) (*models.User, error) {
	user := models.User{ID: "generated", Phone: userReq.Phone, Name: userReq.Name, Role: userReq.Role}
	f.users[user.ID] = &user
	return &user, nil
}

func (f *fakeUserRepository) GetUserByID(ctx context.Context, userId string) (*models.User, error) {
	user, ok := f.users[userId]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, user := range f.users {
		if user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) DeductCredit(ctx context.Context, userId string) (*models.User, error) {
	user, ok := f.users[userId]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if user.Credits > 0 {
		user.Credits--
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepository) AddCredits(ctx context.Context, userId string, amount int) (*models.User, error) {
	user, ok := f.users[userId]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.Credits += amount
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepository) DeleteUser(ctx context.Context, userId string) error {
	if _, ok := f.users[userId]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, userId)
	return nil
}

func validTenderRequest() models.TenderRequest {
	return models.TenderRequest{
		OrganizerID: "org-1",
		Title:       "Смена на складе",
		Location:    "Москва",
		Date:        time.Now().Add(72 * time.Hour),
		StartTime:   "09:00",
		EndTime:     "18:00",
		Pay:         3500,
		Quota:       2,
		Invites: []models.InviteRequest{
			{UserID: "u1", UserName: "Анна", UserPhone: "+79990000001"},
			{UserName: "Гость", UserPhone: "+79990000002"},
		},
	}
}

func newTenderServiceForTest() (*TenderService, *fakeTenderRepository, *fakeUserRepository) {
	tenderRepo := newFakeTenderRepository()
	userRepo := newFakeUserRepository(
		models.User{ID: "org-1", Phone: "+79991111111", Name: "Организатор", Role: models.Organizer, Credits: 10},
		models.User{ID: "u1", Phone: "+79990000001", Name: "Анна", Role: models.Participant, Credits: 50},
	)
	return NewTenderService(tenderRepo, userRepo), tenderRepo, userRepo
}

func TestCreateTenderForcesOpenAndDeductsCredit(t *testing.T) {
	service, _, userRepo := newTenderServiceForTest()

	tender, err := service.CreateTender(context.Background(), validTenderRequest())
	if err != nil {
		t.Fatalf("create tender: %v", err)
	}
	if tender.Status != models.OpenTender {
		t.Errorf("status = %s, want open", tender.Status)
	}
	if len(tender.Invites) != 2 {
		t.Fatalf("invite count = %d, want 2", len(tender.Invites))
	}
	for _, invite := range tender.Invites {
		if invite.Status != models.PendingInvite {
			t.Errorf("invite status = %s, want pending", invite.Status)
		}
	}
	if !tender.Invites[1].IsGuest || tender.Invites[1].UserID != nil {
		t.Error("invite without userId must be a guest invite")
	}

	organizer, _ := userRepo.GetUserByID(context.Background(), "org-1")
	if organizer.Credits != 9 {
		t.Errorf("organizer credits = %d, want 9 after one posting", organizer.Credits)
	}
}

func TestCreateTenderValidation(t *testing.T) {
	service, _, _ := newTenderServiceForTest()

	tests := []struct {
		name     string
		mutate   func(*models.TenderRequest)
		wantCode int
	}{
		{"missing title", func(r *models.TenderRequest) { r.Title = "" }, http.StatusBadRequest},
		{"zero quota", func(r *models.TenderRequest) { r.Quota = 0 }, http.StatusBadRequest},
		{"negative quota", func(r *models.TenderRequest) { r.Quota = -1 }, http.StatusBadRequest},
		{"duplicate invites", func(r *models.TenderRequest) {
			r.Invites = append(r.Invites, models.InviteRequest{UserID: "u1", UserName: "Анна", UserPhone: "+79990000001"})
		}, http.StatusBadRequest},
		{"unknown organizer", func(r *models.TenderRequest) { r.OrganizerID = "ghost" }, http.StatusUnauthorized},
		{"participant as organizer", func(r *models.TenderRequest) { r.OrganizerID = "u1" }, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTenderRequest()
			tt.mutate(&req)
			_, err := service.CreateTender(context.Background(), req)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := statusCodeOf(t, err); code != tt.wantCode {
				t.Errorf("status code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

// Сохранённый тендер читается с теми же приглашениями в том же порядке.
func TestCreateTenderRoundTripKeepsInviteOrder(t *testing.T) {
	service, tenderRepo, _ := newTenderServiceForTest()

	req := validTenderRequest()
	req.Invites = []models.InviteRequest{
		{UserID: "u1", UserName: "Анна", UserPhone: "+79990000001"},
		{UserID: "u2", UserName: "Борис", UserPhone: "+79990000002"},
		{UserName: "Гость", UserPhone: "+79990000003"},
	}

	created, err := service.CreateTender(context.Background(), req)
	if err != nil {
		t.Fatalf("create tender: %v", err)
	}

	loaded, err := tenderRepo.GetTenderByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("load tender: %v", err)
	}
	if len(loaded.Invites) != len(created.Invites) {
		t.Fatalf("invite count changed: %d -> %d", len(created.Invites), len(loaded.Invites))
	}
	for i := range created.Invites {
		if loaded.Invites[i].UserName != created.Invites[i].UserName ||
			loaded.Invites[i].UserPhone != created.Invites[i].UserPhone ||
			loaded.Invites[i].Status != created.Invites[i].Status {
			t.Errorf("invite %d mismatch after round trip", i)
		}
	}
}

func TestCloseTender(t *testing.T) {
	service, tenderRepo, _ := newTenderServiceForTest()
	seedTender(tenderRepo, "t1", 2, "u1")

	_, err := service.CloseTender(context.Background(), "t1", "stranger")
	if err == nil {
		t.Fatal("expected error for foreign organizer")
	}
	if code := statusCodeOf(t, err); code != http.StatusForbidden {
		t.Errorf("status code = %d, want 403", code)
	}

	tender, err := service.CloseTender(context.Background(), "t1", "org-1")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if tender.Status != models.ClosedTender {
		t.Errorf("status = %s, want closed", tender.Status)
	}

	// Закрытие терминально, повторное закрытие отклоняется.
	_, err = service.CloseTender(context.Background(), "t1", "org-1")
	if err == nil {
		t.Fatal("expected error for double close")
	}
	if code := statusCodeOf(t, err); code != http.StatusBadRequest {
		t.Errorf("status code = %d, want 400", code)
	}
}

func TestOrganizerTendersViewAndParticipantFeedView(t *testing.T) {
	service, tenderRepo, _ := newTenderServiceForTest()
	seedTender(tenderRepo, "t1", 1, "u1")
	seedTender(tenderRepo, "t2", 1, "u2")

	tenders, err := service.OrganizerTendersView(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("organizer view: %v", err)
	}
	if len(tenders) != 2 {
		t.Errorf("organizer tenders = %d, want 2", len(tenders))
	}

	feed, err := service.ParticipantFeedView(context.Background(), "u1", time.Now())
	if err != nil {
		t.Fatalf("participant view: %v", err)
	}
	if len(feed.Active) != 1 || feed.Active[0].ID != "t1" {
		t.Errorf("expected t1 in active feed, got %v", feed.Active)
	}
	if len(feed.History) != 0 {
		t.Errorf("expected empty history, got %v", feed.History)
	}

	if _, err := service.OrganizerTendersView(context.Background(), ""); err == nil {
		t.Error("expected error for empty organizer id")
	}
}
