package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"isafari/internal/models"
	"isafari/internal/repositories"
)

func hashed(t *testing.T, pw string) *string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(h)
	return &s
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	users := newStubUsers(models.User{ID: 1, Email: "amina@example.com"})
	svc := &AuthService{UserRepo: users, TokenManager: stubTokens{}}

	_, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Email: "  Amina@Example.com ", Password: "secret1", FirstName: "Amina", LastName: "Juma", UserType: models.UserTypeTraveler,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	assert.Nil(t, users.created)
}

func TestSignUpTravelerHasNoProvider(t *testing.T) {
	users := newStubUsers()
	svc := &AuthService{UserRepo: users, TokenManager: stubTokens{}}

	res, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Email: "Baraka@Example.com", Password: "secret1", FirstName: "Baraka", LastName: "Mushi", UserType: models.UserTypeTraveler,
	})
	require.NoError(t, err)
	assert.Equal(t, "baraka@example.com", res.User.Email)
	assert.Equal(t, "token-for-baraka@example.com", res.Token)
	assert.Nil(t, users.provider)

	require.NotNil(t, users.created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*users.created.Password), []byte("secret1")))
	cost, err := bcrypt.Cost([]byte(*users.created.Password))
	require.NoError(t, err)
	assert.Equal(t, 12, cost)
}

func TestSignUpProviderBuildsProfile(t *testing.T) {
	users := newStubUsers()
	svc := &AuthService{UserRepo: users, TokenManager: stubTokens{}}

	res, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Email: "safari@example.com", Password: "secret1", FirstName: "Neema", LastName: "Kweka",
		UserType:     models.UserTypeProvider,
		CompanyName:  "Kilimanjaro Trails",
		BusinessType: "Tours",
		LocationData: &models.LocationData{Region: " Arusha ", District: "Arusha City", Ward: "Kaloleni"},
	})
	require.NoError(t, err)
	require.NotNil(t, users.provider)
	require.NotNil(t, res.User.Provider)

	p := users.provider
	assert.Equal(t, "Kilimanjaro Trails", p.BusinessName)
	assert.Equal(t, "Kaloleni, Arusha City, Arusha, Tanzania", p.Location)
	assert.Equal(t, "Arusha", *p.Region)
	assert.Equal(t, []string{"Tours"}, p.ServiceCategories)

	var loc map[string]string
	require.NoError(t, json.Unmarshal(p.LocationData, &loc))
	assert.Equal(t, "Kaloleni", loc["ward"])
}

func TestSignIn(t *testing.T) {
	users := newStubUsers(
		models.User{ID: 1, Email: "amina@example.com", Password: hashed(t, "right-pass"), UserType: models.UserTypeTraveler, IsActive: true},
		models.User{ID: 2, Email: "google@example.com", UserType: models.UserTypeTraveler, IsActive: true},
		models.User{ID: 3, Email: "banned@example.com", Password: hashed(t, "right-pass"), UserType: models.UserTypeTraveler},
	)
	svc := &AuthService{UserRepo: users, TokenManager: stubTokens{}}
	ctx := context.Background()

	cases := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{"ok", "amina@example.com", "right-pass", nil},
		{"wrong password", "amina@example.com", "nope", models.ErrInvalidCredentials},
		{"unknown email", "who@example.com", "right-pass", models.ErrInvalidCredentials},
		{"no password", "google@example.com", "x", models.ErrNoPassword},
		{"suspended", "banned@example.com", "right-pass", models.ErrAccountSuspended},
		{"suspended wrong password", "banned@example.com", "nope", models.ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.SignIn(ctx, models.SignInRequest{Email: tc.email, Password: tc.pass})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, res.User.ID)
			assert.NotEmpty(t, res.Token)
		})
	}
}

func TestSignInAttachesProviderProfile(t *testing.T) {
	users := newStubUsers(models.User{ID: 5, Email: "p@example.com", Password: hashed(t, "pw1234"), UserType: models.UserTypeProvider, IsActive: true})
	providers := newStubProviders(models.ServiceProvider{ID: 9, UserID: 5, BusinessName: "Zanzi Dhow"})
	svc := &AuthService{UserRepo: users, ProviderRepo: providers, TokenManager: stubTokens{}}

	res, err := svc.SignIn(context.Background(), models.SignInRequest{Email: "p@example.com", Password: "pw1234"})
	require.NoError(t, err)
	require.NotNil(t, res.User.Provider)
	assert.Equal(t, 9, res.User.Provider.ID)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	tokens := &stubResetTokens{}
	svc := &AuthService{UserRepo: newStubUsers(), ResetTokens: tokens, ResetTTL: 15 * time.Minute}

	require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, tokens.saved)
}

func TestForgotPasswordLogsUserNotToken(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	tokens := &stubResetTokens{}
	svc := &AuthService{
		UserRepo:    newStubUsers(models.User{ID: 7, Email: "amina@example.com"}),
		ResetTokens: tokens,
		ResetTTL:    15 * time.Minute,
		Log:         zap.New(core).Sugar(),
	}

	require.NoError(t, svc.ForgotPassword(context.Background(), "amina@example.com"))
	require.Len(t, tokens.saved, 1)
	var token string
	for tok := range tokens.saved {
		token = tok
	}

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "password reset token issued for user 7", entries[0].Message)
	assert.NotContains(t, entries[0].Message, token)
}

func TestPasswordResetFlowWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	users := newStubUsers(models.User{ID: 7, Email: "amina@example.com", Password: hashed(t, "old-pass")})
	svc := &AuthService{
		UserRepo:    users,
		ResetTokens: repositories.NewResetTokenStore(client),
		ResetTTL:    15 * time.Minute,
	}
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "amina@example.com"))
	keys := mr.Keys()
	require.Len(t, keys, 1)
	token := keys[0][len("reset:"):]
	assert.Equal(t, 15*time.Minute, mr.TTL(keys[0]))

	require.NoError(t, svc.ResetPassword(ctx, token, "new-pass"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.passwords[7]), []byte("new-pass")))

	err := svc.ResetPassword(ctx, token, "again-pass")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)
}

func TestChangePassword(t *testing.T) {
	users := newStubUsers(models.User{ID: 3, Email: "x@example.com", Password: hashed(t, "current")})
	svc := &UserService{UserRepo: users}
	ctx := context.Background()

	err := svc.ChangePassword(ctx, 3, models.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "next-one"})
	assert.ErrorIs(t, err, models.ErrInvalidPassword)

	require.NoError(t, svc.ChangePassword(ctx, 3, models.ChangePasswordRequest{CurrentPassword: "current", NewPassword: "next-one"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.passwords[3]), []byte("next-one")))
}

func TestUpdateProfileOnlyTouchesGivenFields(t *testing.T) {
	users := newStubUsers(models.User{ID: 3, Email: "x@example.com"})
	svc := &UserService{UserRepo: users}

	_, err := svc.UpdateProfile(context.Background(), 3, models.UpdateProfileRequest{FirstName: sptr(" Zawadi "), Phone: sptr("")})
	require.NoError(t, err)
	assert.Equal(t, "Zawadi", users.fields["first_name"])
	assert.Nil(t, users.fields["phone"])
	_, hasLast := users.fields["last_name"]
	assert.False(t, hasLast)
}
