package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Lj07-coder/SkillDeck/internal/db"
	"github.com/Lj07-coder/SkillDeck/internal/fetch"
	"github.com/Lj07-coder/SkillDeck/internal/llm"
	"github.com/Lj07-coder/SkillDeck/internal/server/ratelimit"
	"github.com/Lj07-coder/SkillDeck/internal/skills"
	"github.com/Lj07-coder/SkillDeck/internal/types"
)

// memStore is an in-memory Store.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*db.User
	order    []uuid.UUID
	projects map[uuid.UUID][]types.Project

	pingErr error
	listErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*db.User),
		projects: make(map[uuid.UUID][]types.Project),
	}
}

var _ Store = (*memStore)(nil)

func (m *memStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := m.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (m *memStore) CreateUser(_ context.Context, nu db.NewUser) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	u := &db.User{
		ID:              uuid.New(),
		FirstName:       nu.FirstName,
		LastName:        nu.LastName,
		Email:           db.NormalizeEmail(nu.Email),
		PasswordHash:    nu.PasswordHash,
		PasswordSet:     nu.PasswordHash != "",
		ProfilePhotoURL: nu.ProfilePhotoURL,
		ResumeURL:       nu.ResumeURL,
		Achievements:    nu.Achievements,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.users[u.ID] = u
	m.order = append(m.order, u.ID)
	return u.ID, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == db.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) update(id uuid.UUID, fn func(*db.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("%w: %s", db.ErrUserNotFound, id)
	}
	fn(u)
	return nil
}

func (m *memStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return m.update(id, func(u *db.User) { u.PasswordHash, u.PasswordSet = hash, true })
}

func (m *memStore) UpdateAchievements(_ context.Context, id uuid.UUID, text string) error {
	return m.update(id, func(u *db.User) { u.Achievements = text })
}

func (m *memStore) UpdateProfilePhoto(_ context.Context, id uuid.UUID, url string) error {
	return m.update(id, func(u *db.User) { u.ProfilePhotoURL = url })
}

func (m *memStore) UpdateResume(_ context.Context, id uuid.UUID, url string) error {
	return m.update(id, func(u *db.User) { u.ResumeURL = url })
}

func projectFromInput(id, userID uuid.UUID, in *types.ProjectInput) types.Project {
	return types.Project{
		ID:             id,
		UserID:         userID,
		Title:          in.Title,
		Description:    in.Description,
		Phone:          in.Phone,
		WorkEmail:      in.WorkEmail,
		Technologies:   in.Technologies,
		Skills:         in.Skills,
		CompletionDate: in.CompletionDate,
		ProjectTypes:   in.ProjectTypes,
		Link:           in.Link,
		ImageURL:       in.ImageURL,
		Achievements:   in.Achievements,
	}
}

func (m *memStore) CreateProject(_ context.Context, userID uuid.UUID, in *types.ProjectInput) (*types.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := projectFromInput(uuid.New(), userID, in)
	m.projects[userID] = append(m.projects[userID], p)
	return &p, nil
}

func (m *memStore) UpdateProject(_ context.Context, userID, projectID uuid.UUID, in *types.ProjectInput) (*types.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.projects[userID] {
		if p.ID != projectID {
			continue
		}
		updated := projectFromInput(projectID, userID, in)
		if updated.ImageURL == "" {
			updated.ImageURL = p.ImageURL
		}
		m.projects[userID][i] = updated
		return &updated, nil
	}
	return nil, nil
}

func (m *memStore) DeleteProject(_ context.Context, userID, projectID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.projects[userID] {
		if p.ID == projectID {
			m.projects[userID] = append(m.projects[userID][:i], m.projects[userID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListProjectsByUser(_ context.Context, userID uuid.UUID) ([]types.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Project(nil), m.projects[userID]...), nil
}

func (m *memStore) ListProfiles(_ context.Context) ([]types.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	profiles := make([]types.Profile, 0, len(m.order))
	for _, id := range m.order {
		profiles = append(profiles, m.users[id].ToProfile())
	}
	return profiles, nil
}

func (m *memStore) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	u, _ := m.GetUser(ctx, userID)
	if u == nil {
		return nil, nil
	}
	profile := u.ToProfile()
	profile.Projects, _ = m.ListProjectsByUser(ctx, userID)
	return &profile, nil
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

// addUser creates a user that cannot log in, with projects attached.
func (m *memStore) addUser(t *testing.T, first, last, email string, projects ...types.ProjectInput) uuid.UUID {
	t.Helper()
	id, err := m.CreateUser(context.Background(), db.NewUser{FirstName: first, LastName: last, Email: email})
	require.NoError(t, err)
	for i := range projects {
		_, err := m.CreateProject(context.Background(), id, &projects[i])
		require.NoError(t, err)
	}
	return id
}

type fakeUploader struct {
	mu       sync.Mutex
	url      string
	err      error
	uploaded map[string][]byte
}

func (f *fakeUploader) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploaded == nil {
		f.uploaded = make(map[string][]byte)
	}
	f.uploaded[filename] = data
	return f.url + filename, nil
}

type fakePreviewer struct {
	preview *fetch.Preview
	err     error
	calls   []string
}

func (f *fakePreviewer) Preview(_ context.Context, url string) (*fetch.Preview, error) {
	f.calls = append(f.calls, url)
	return f.preview, f.err
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

// newTestServer builds a server over a memStore with rate limiting off
// and the cheapest bcrypt cost.
func newTestServer(t *testing.T, mutate ...func(*Config)) (*Server, *memStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	store := newMemStore()
	cfg := Config{
		Port:       0,
		RateLimit:  &ratelimit.Config{Enabled: false},
		Store:      store,
		Vocabulary: skills.NewVocabulary([]string{"Java", "JavaScript", "Go", "GraphQL", "Python", "React", "Docker"}),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s, store
}

// serve sends a request through the full middleware chain. A non-nil
// body is JSON encoded unless it is already an io.Reader.
func serve(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reader != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, s *Server, userID uuid.UUID) string {
	t.Helper()
	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// statusOf is a readable failure message helper.
func statusOf(w *httptest.ResponseRecorder) string {
	return fmt.Sprintf("%d %s: %s", w.Code, http.StatusText(w.Code), w.Body.String())
}
