package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/storefront/internal/apperr"
	"github.com/Skotchmaster/storefront/internal/auth"
	"github.com/Skotchmaster/storefront/internal/dbtest"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/hash"
)

type testEnv struct {
	svc    *Service
	repo   *GormRepo
	tokens *auth.TokenService
	events *events.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := NewGormRepo(dbtest.Open(t, &User{}))
	tokens := auth.NewTokenService([]byte("users-test-secret"), time.Hour)
	rec := &events.Recorder{}
	return &testEnv{
		svc:    NewService(repo, hash.New(bcrypt.MinCost, 2), tokens, events.NewEmitter(rec, nil)),
		repo:   repo,
		tokens: tokens,
		events: rec,
	}
}

func jane() RegisterInput {
	return RegisterInput{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Password: "Passw0rd1"}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.KindValidation, ae.Kind)
	return ae.Fields
}

func TestRegister_CreatesNonAdminWithHashedPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.svc.Register(ctx, jane())
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", sess.Email)
	assert.Equal(t, "Jane", sess.Name)
	assert.False(t, sess.IsAdmin)

	stored, err := env.repo.FindByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin)
	assert.NotEqual(t, "Passw0rd1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Passw0rd1")))

	id, err := env.tokens.Verify("Bearer " + sess.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, id.ID)
	assert.False(t, id.IsAdmin)

	assert.Equal(t, []string{"user_registered"}, env.events.Types())
}

func TestRegister_ReportsAllInvalidFields(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Register(context.Background(), RegisterInput{
		FirstName: "J",
		LastName:  "D0e",
		Email:     "not-an-email",
		Password:  "short",
	})
	fields := validationFields(t, err)
	assert.Equal(t, map[string]string{
		"fname":    MsgFirstName,
		"lname":    MsgLastName,
		"email":    MsgEmail,
		"password": MsgPassword,
	}, fields)
	assert.Empty(t, env.events.Types())
}

func TestRegister_PasswordRules(t *testing.T) {
	env := newTestEnv(t)
	cases := map[string]string{
		"no upper":  "passw0rd1",
		"no lower":  "PASSW0RD1",
		"no digit":  "Password",
		"too short": "Pa0",
	}
	for name, pw := range cases {
		t.Run(name, func(t *testing.T) {
			in := jane()
			in.Password = pw
			_, err := env.svc.Register(context.Background(), in)
			assert.Equal(t, MsgPassword, validationFields(t, err)["password"])
		})
	}
}

func TestRegister_PasswordLengthLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	long := jane()
	long.Password = "Passw0rd1" + strings.Repeat("a", 80)
	_, err := env.svc.Register(ctx, long)
	assert.Equal(t, map[string]string{"password": MsgPasswordLong}, validationFields(t, err))
	assert.Empty(t, env.events.Types())

	edge := jane()
	edge.Password = "Passw0rd1" + strings.Repeat("a", 63)
	require.Len(t, edge.Password, 72)
	_, err = env.svc.Register(ctx, edge)
	require.NoError(t, err)
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, jane())
	require.NoError(t, err)

	dup := jane()
	dup.Email = "  JANE@X.COM "
	_, err = env.svc.Register(ctx, dup)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Equal(t, MsgEmailInUse, ae.Message)
}

func TestRepo_CreateDuplicateReportsEmailTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.repo.Create(ctx, &User{Email: "a@b.co", FirstName: "Ab", LastName: "Cd", PasswordHash: "x"}))
	err := env.repo.Create(ctx, &User{Email: "A@B.CO", FirstName: "Ab", LastName: "Cd", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogin_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Register(ctx, jane())
	require.NoError(t, err)

	sess, err := env.svc.Login(ctx, LoginInput{Email: "Jane@X.com", Password: "Passw0rd1"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", sess.Name)

	id, err := env.tokens.Verify("Bearer " + sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", id.Email)
}

func TestLogin_IdenticalErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Register(ctx, jane())
	require.NoError(t, err)

	_, errUnknown := env.svc.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "Passw0rd1"})
	_, errWrong := env.svc.Login(ctx, LoginInput{Email: "jane@x.com", Password: "Wrong0ne1"})

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown, errWrong)
	assert.Equal(t, MsgInvalidCredentials, errWrong.(*apperr.Error).Message)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(errWrong))
}

func TestLogin_RequiresBothFields(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Login(context.Background(), LoginInput{})
	assert.Equal(t, map[string]string{
		"email":    MsgEmailRequired,
		"password": MsgPassRequired,
	}, validationFields(t, err))
}

func TestCreateAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root, err := env.svc.Bootstrap(ctx, RegisterInput{FirstName: "Root", LastName: "Admin", Email: "root@x.com", Password: "Adm1nPass"})
	require.NoError(t, err)
	require.True(t, root.IsAdmin)

	sess, err := env.svc.Register(ctx, jane())
	require.NoError(t, err)
	janeID, err := env.tokens.Verify("Bearer " + sess.Token)
	require.NoError(t, err)

	in := RegisterInput{FirstName: "Ops", LastName: "Person", Email: "ops@x.com", Password: "0psPassword"}

	t.Run("anonymous", func(t *testing.T) {
		_, err := env.svc.CreateAdmin(ctx, nil, in)
		assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := env.svc.CreateAdmin(ctx, janeID, in)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})

	t.Run("forged admin claim is checked against the store", func(t *testing.T) {
		forged := *janeID
		forged.IsAdmin = true
		_, err := env.svc.CreateAdmin(ctx, &forged, in)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})

	t.Run("admin", func(t *testing.T) {
		admin, err := env.svc.CreateAdmin(ctx, &auth.Identity{ID: root.ID, Email: root.Email, IsAdmin: true}, in)
		require.NoError(t, err)
		assert.True(t, admin.IsAdmin)
		assert.Equal(t, "ops@x.com", admin.Email)

		_, err = env.svc.CreateAdmin(ctx, &auth.Identity{ID: root.ID, IsAdmin: true}, in)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	assert.Equal(t, []string{"admin_created", "user_registered", "admin_created"}, env.events.Types())
}
