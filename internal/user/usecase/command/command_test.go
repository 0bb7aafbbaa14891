package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/foodgram/internal/user/domain"
	"github.com/tair/foodgram/pkg/auth"
)

type fakeUserRepo struct {
	users   map[uint]*domain.User
	nextID  uint
	adjusts map[uint]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1, adjusts: map[uint]int{}}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domain.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) { return int64(len(r.users)), nil }

func (r *fakeUserRepo) AdjustRecipeCount(authorID uint, delta int) error {
	user, ok := r.users[authorID]
	if !ok {
		return domain.ErrNotFound
	}
	user.RecipeCount += delta
	if user.RecipeCount < 0 {
		user.RecipeCount = 0
	}
	r.adjusts[authorID] += delta
	return nil
}

type followPair struct{ userID, authorID uint }

type fakeFollowRepo struct {
	pairs map[followPair]struct{}
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{pairs: map[followPair]struct{}{}}
}

func (r *fakeFollowRepo) Add(follow *domain.Follow) error {
	pair := followPair{follow.UserID, follow.AuthorID}
	if _, ok := r.pairs[pair]; ok {
		return domain.ErrConflict
	}
	r.pairs[pair] = struct{}{}
	return nil
}

func (r *fakeFollowRepo) Remove(userID, authorID uint) error {
	pair := followPair{userID, authorID}
	if _, ok := r.pairs[pair]; !ok {
		return domain.ErrNotFound
	}
	delete(r.pairs, pair)
	return nil
}

func (r *fakeFollowRepo) Exists(userID, authorID uint) (bool, error) {
	_, ok := r.pairs[followPair{userID, authorID}]
	return ok, nil
}

func (r *fakeFollowRepo) ListAuthors(userID uint, limit, offset int) ([]domain.User, error) {
	return nil, nil
}

func (r *fakeFollowRepo) CountAuthors(userID uint) (int64, error) {
	var n int64
	for pair := range r.pairs {
		if pair.userID == userID {
			n++
		}
	}
	return n, nil
}

func registerUser(t *testing.T, repo *fakeUserRepo, username string) *domain.User {
	t.Helper()

	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "s3cret-pass",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()

	user := registerUser(t, repo, "chef")

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "s3cret-pass"))
}

func TestRegisterUser_Validation(t *testing.T) {
	valid := RegisterUserCommand{
		Username:  "chef",
		Email:     "chef@example.com",
		Password:  "s3cret-pass",
		FirstName: "Test",
		LastName:  "User",
	}

	tests := []struct {
		name   string
		mutate func(*RegisterUserCommand)
	}{
		{"missing username", func(cmd *RegisterUserCommand) { cmd.Username = "" }},
		{"missing email", func(cmd *RegisterUserCommand) { cmd.Email = "" }},
		{"missing password", func(cmd *RegisterUserCommand) { cmd.Password = "" }},
		{"short password", func(cmd *RegisterUserCommand) { cmd.Password = "abc" }},
		{"missing first name", func(cmd *RegisterUserCommand) { cmd.FirstName = "" }},
		{"missing last name", func(cmd *RegisterUserCommand) { cmd.LastName = "" }},
		{"invalid role", func(cmd *RegisterUserCommand) { cmd.Role = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)

			_, err := NewRegisterUserHandler(newFakeUserRepo()).Handle(cmd)
			require.Error(t, err)
		})
	}
}

func TestRegisterUser_TakenUsername(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "chef")

	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username:  "chef",
		Email:     "other@example.com",
		Password:  "s3cret-pass",
		FirstName: "Test",
		LastName:  "User",
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "chef")
	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Username: "chef", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "chef", claims.Username)
}

func TestLoginUser_BadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "chef")
	handler := NewLoginUserHandler(repo)

	_, err := handler.Handle(LoginUserCommand{Username: "chef", Password: "wrong"})
	require.Error(t, err)

	_, err = handler.Handle(LoginUserCommand{Username: "ghost", Password: "s3cret-pass"})
	require.Error(t, err)
}

func TestLoginUser_DeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerUser(t, repo, "chef")
	repo.users[user.ID].IsActive = false

	_, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "chef", Password: "s3cret-pass"})
	require.Error(t, err)
}

func TestFollowAuthor(t *testing.T) {
	users := newFakeUserRepo()
	reader := registerUser(t, users, "reader")
	author := registerUser(t, users, "author")
	follows := newFakeFollowRepo()
	handler := NewFollowAuthorHandler(users, follows)

	got, err := handler.Handle(FollowAuthorCommand{UserID: reader.ID, AuthorID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.ID)

	exists, err := follows.Exists(reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowAuthor_Self(t *testing.T) {
	users := newFakeUserRepo()
	reader := registerUser(t, users, "reader")
	handler := NewFollowAuthorHandler(users, newFakeFollowRepo())

	_, err := handler.Handle(FollowAuthorCommand{UserID: reader.ID, AuthorID: reader.ID})
	require.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowAuthor_Repeated(t *testing.T) {
	users := newFakeUserRepo()
	reader := registerUser(t, users, "reader")
	author := registerUser(t, users, "author")
	handler := NewFollowAuthorHandler(users, newFakeFollowRepo())

	cmd := FollowAuthorCommand{UserID: reader.ID, AuthorID: author.ID}
	_, err := handler.Handle(cmd)
	require.NoError(t, err)

	_, err = handler.Handle(cmd)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestFollowAuthor_UnknownAuthor(t *testing.T) {
	users := newFakeUserRepo()
	reader := registerUser(t, users, "reader")
	handler := NewFollowAuthorHandler(users, newFakeFollowRepo())

	_, err := handler.Handle(FollowAuthorCommand{UserID: reader.ID, AuthorID: 999})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnfollowAuthor(t *testing.T) {
	follows := newFakeFollowRepo()
	require.NoError(t, follows.Add(&domain.Follow{UserID: 1, AuthorID: 2}))
	handler := NewUnfollowAuthorHandler(follows)

	require.NoError(t, handler.Handle(UnfollowAuthorCommand{UserID: 1, AuthorID: 2}))

	err := handler.Handle(UnfollowAuthorCommand{UserID: 1, AuthorID: 2})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncRecipeCount(t *testing.T) {
	users := newFakeUserRepo()
	author := registerUser(t, users, "author")
	handler := NewSyncRecipeCountHandler(users)

	require.NoError(t, handler.Handle(SyncRecipeCountCommand{AuthorID: author.ID, Delta: 1}))
	require.NoError(t, handler.Handle(SyncRecipeCountCommand{AuthorID: author.ID, Delta: 1}))
	require.NoError(t, handler.Handle(SyncRecipeCountCommand{AuthorID: author.ID, Delta: -1}))

	stored, err := users.FindByID(author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.RecipeCount)
}

func TestSyncRecipeCount_UnknownAuthorDropped(t *testing.T) {
	handler := NewSyncRecipeCountHandler(newFakeUserRepo())

	// a late delete event for a removed author must not surface an error
	require.NoError(t, handler.Handle(SyncRecipeCountCommand{AuthorID: 999, Delta: -1}))
}

func TestSyncRecipeCount_ZeroDeltaIsNoop(t *testing.T) {
	users := newFakeUserRepo()
	author := registerUser(t, users, "author")
	handler := NewSyncRecipeCountHandler(users)

	require.NoError(t, handler.Handle(SyncRecipeCountCommand{AuthorID: author.ID, Delta: 0}))
	assert.Empty(t, users.adjusts)
}
