package services

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/devconnect/api/internal/models"
	appErr "github.com/devconnect/api/pkg/errors"
	"github.com/devconnect/api/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// in-memory repositories backing the service tests

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]models.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id any, dest *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, ok := id.(uuid.UUID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	u, ok := r.users[uid]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	*dest = u
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id any) error {
	uid, _ := id.(uuid.UUID)
	return r.DeleteByID(ctx, uid)
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			*dest = u
			return nil
		}
	}
	return appErr.New(appErr.CodeNotFound, "user not found")
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var u models.User
	err := r.GetByEmail(ctx, email, &u)
	if err == nil {
		return true, nil
	}
	if appErr.IsCode(err, appErr.CodeNotFound) {
		return false, nil
	}
	return false, err
}

func (r *memUserRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	delete(r.users, id)
	return nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.Profile // keyed by user id
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[uuid.UUID]models.Profile{}}
}

func (r *memProfileRepo) Create(ctx context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.profiles[p.UserID] = *p
	return nil
}

func (r *memProfileRepo) GetByID(ctx context.Context, id any, dest *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.ID == id {
			*dest = p
			return nil
		}
	}
	return appErr.New(appErr.CodeNotFound, "profile not found")
}

func (r *memProfileRepo) Update(ctx context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = *p
	return nil
}

func (r *memProfileRepo) Delete(ctx context.Context, id any) error {
	return appErr.New(appErr.CodeInternal, "not used")
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID, dest *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "profile not found")
	}
	*dest = p
	return nil
}

func (r *memProfileRepo) List(ctx context.Context) ([]models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProfileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.profiles[p.UserID] = *p
	return nil
}

func (r *memProfileRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

func (r *memProfileRepo) SaveExperience(ctx context.Context, userID uuid.UUID, experience datatypes.JSONSlice[models.Experience]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "profile not found")
	}
	p.Experience = experience
	r.profiles[userID] = p
	return nil
}

func (r *memProfileRepo) SaveEducation(ctx context.Context, userID uuid.UUID, education datatypes.JSONSlice[models.Education]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "profile not found")
	}
	p.Education = education
	r.profiles[userID] = p
	return nil
}

type staticIssuer struct{ last string }

func (i *staticIssuer) Issue(userID string) (string, error) {
	i.last = userID
	return "token-for-" + userID, nil
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, &staticIssuer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "Alice Again", "alice@example.com", "secret2")
	if !appErr.IsCode(err, appErr.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected a single user record, got %d", len(users.users))
	}
}

func TestLoginUniformFailureMessage(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, &staticIssuer{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Bob", "bob@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errUnknown := svc.Login(ctx, "nobody@example.com", "secret1")
	_, errWrongPw := svc.Login(ctx, "bob@example.com", "wrong")
	for _, err := range []error{errUnknown, errWrongPw} {
		if !appErr.IsCode(err, appErr.CodeUnauthorized) {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if got := appErr.Message(err); got != "Invalid credentials" {
			t.Fatalf("expected uniform message, got %q", got)
		}
	}
}

func TestLoginIssuesTokenForSameUser(t *testing.T) {
	users := newMemUserRepo()
	issuer := &staticIssuer{}
	svc := NewAuthService(users, issuer)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Carol", "carol@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	registeredID := issuer.last

	tok, err := svc.Login(ctx, "carol@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if issuer.last != registeredID {
		t.Fatalf("login issued for %q, register issued for %q", issuer.last, registeredID)
	}
	if tok != "token-for-"+registeredID {
		t.Fatalf("unexpected token %q", tok)
	}
}

func newProfileFixture(t *testing.T) (ProfileService, *memProfileRepo, uuid.UUID) {
	t.Helper()
	users := newMemUserRepo()
	profiles := newMemProfileRepo()

	u := models.User{Name: "Dana", Email: "dana@example.com", Avatar: "http://a", PasswordHash: "x"}
	if err := users.Create(context.Background(), &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewProfileService(profiles, users)
	if _, err := svc.UpsertProfile(context.Background(), u.ID, &ProfileInput{
		Status: "Developer",
		Skills: " Go , SQL ,",
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return svc, profiles, u.ID
}

func TestUpsertProfileSplitsAndTrimsSkills(t *testing.T) {
	svc, _, uid := newProfileFixture(t)

	p, err := svc.GetOwnProfile(context.Background(), uid)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if len(p.Skills) != 2 || p.Skills[0] != "Go" || p.Skills[1] != "SQL" {
		t.Fatalf("unexpected skills: %v", p.Skills)
	}
	if p.User == nil || p.User.Name != "Dana" {
		t.Fatalf("profile owner not populated: %+v", p.User)
	}
}

func TestUpsertProfileKeepsSubcollections(t *testing.T) {
	svc, _, uid := newProfileFixture(t)
	ctx := context.Background()

	if _, err := svc.AddExperience(ctx, uid, &ExperienceInput{Title: "Eng", Company: "Acme", From: "2020-01-01"}); err != nil {
		t.Fatalf("add experience: %v", err)
	}

	p, err := svc.UpsertProfile(ctx, uid, &ProfileInput{Status: "Senior Developer", Skills: "Go"})
	if err != nil {
		t.Fatalf("resubmit profile: %v", err)
	}
	if p.Status != "Senior Developer" {
		t.Fatalf("status not updated: %q", p.Status)
	}
	if len(p.Experience) != 1 || p.Experience[0].Title != "Eng" {
		t.Fatalf("experience lost on resubmission: %+v", p.Experience)
	}
}

func TestAddExperiencePrepends(t *testing.T) {
	svc, _, uid := newProfileFixture(t)
	ctx := context.Background()

	if _, err := svc.AddExperience(ctx, uid, &ExperienceInput{Title: "First", Company: "A", From: "2019-01-01"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	p, err := svc.AddExperience(ctx, uid, &ExperienceInput{Title: "Second", Company: "B", From: "2021-01-01"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Experience))
	}
	if p.Experience[0].Title != "Second" || p.Experience[1].Title != "First" {
		t.Fatalf("newest entry is not first: %+v", p.Experience)
	}
	if p.Experience[0].ID == uuid.Nil {
		t.Fatal("new entry was not assigned an id")
	}
}

func TestEditExperienceMergesInPlace(t *testing.T) {
	svc, _, uid := newProfileFixture(t)
	ctx := context.Background()

	p, err := svc.AddExperience(ctx, uid, &ExperienceInput{Title: "Eng", Company: "Acme", From: "2020-01-01"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	expID := p.Experience[0].ID

	p, err = svc.EditExperience(ctx, uid, expID.String(), ExperiencePatch{Current: true})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	e := p.Experience[0]
	if !e.Current {
		t.Fatal("current flag not set")
	}
	if e.Title != "Eng" || e.Company != "Acme" || e.From != "2020-01-01" {
		t.Fatalf("omitted fields changed: %+v", e)
	}
	if e.ID != expID {
		t.Fatal("entry id changed on edit")
	}
}

func TestEditExperienceUnknownIDNotFound(t *testing.T) {
	svc, _, uid := newProfileFixture(t)

	_, err := svc.EditExperience(context.Background(), uid, uuid.NewString(), ExperiencePatch{Title: "X"})
	if !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestRemoveExperienceUnknownIDLeavesCollection(t *testing.T) {
	svc, profiles, uid := newProfileFixture(t)
	ctx := context.Background()

	if _, err := svc.AddExperience(ctx, uid, &ExperienceInput{Title: "Eng", Company: "Acme", From: "2020-01-01"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	bogus := uuid.NewString()
	for i := 0; i < 2; i++ {
		_, err := svc.RemoveExperience(ctx, uid, bogus)
		if !appErr.IsCode(err, appErr.CodeNotFound) {
			t.Fatalf("attempt %d: expected not_found, got %v", i+1, err)
		}
	}

	var p models.Profile
	if err := profiles.GetByUserID(ctx, uid, &p); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(p.Experience) != 1 {
		t.Fatalf("collection changed by failed removals: %+v", p.Experience)
	}
}

func TestRemoveExperienceByID(t *testing.T) {
	svc, _, uid := newProfileFixture(t)
	ctx := context.Background()

	p, err := svc.AddExperience(ctx, uid, &ExperienceInput{Title: "Eng", Company: "Acme", From: "2020-01-01"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	p, err = svc.RemoveExperience(ctx, uid, p.Experience[0].ID.String())
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(p.Experience) != 0 {
		t.Fatalf("entry not removed: %+v", p.Experience)
	}
}

func TestEducationLifecycle(t *testing.T) {
	svc, _, uid := newProfileFixture(t)
	ctx := context.Background()

	p, err := svc.AddEducation(ctx, uid, &EducationInput{School: "State U", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01"})
	if err != nil {
		t.Fatalf("add education: %v", err)
	}
	eduID := p.Education[0].ID

	p, err = svc.EditEducation(ctx, uid, eduID.String(), EducationPatch{Degree: "MSc"})
	if err != nil {
		t.Fatalf("edit education: %v", err)
	}
	if p.Education[0].Degree != "MSc" || p.Education[0].School != "State U" {
		t.Fatalf("merge wrong: %+v", p.Education[0])
	}

	if _, err := svc.RemoveEducation(ctx, uid, eduID.String()); err != nil {
		t.Fatalf("remove education: %v", err)
	}
}

func TestDeleteAccountRemovesProfileAndUser(t *testing.T) {
	users := newMemUserRepo()
	profiles := newMemProfileRepo()
	u := models.User{Name: "Eve", Email: "eve@example.com"}
	if err := users.Create(context.Background(), &u); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewProfileService(profiles, users)
	if _, err := svc.UpsertProfile(context.Background(), u.ID, &ProfileInput{Status: "Dev", Skills: "Go"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), u.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := svc.GetOwnProfile(context.Background(), u.ID); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("profile still present: %v", err)
	}
	var got models.User
	if err := users.GetByID(context.Background(), u.ID, &got); !appErr.IsCode(err, appErr.CodeNotFound) {
		t.Fatalf("user still present: %v", err)
	}
}
