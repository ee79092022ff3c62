// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package auth_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvban/vidora/internal/platform/apperr"
	"github.com/minhvban/vidora/internal/platform/sec"
	"github.com/minhvban/vidora/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByNick(_ context.Context, nick string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Nick == nick {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

type fakeCredentialRepository struct {
	credentials map[string]*auth.Credential // keyed by username|method
}

func newFakeCredentialRepository() *fakeCredentialRepository {
	return &fakeCredentialRepository{credentials: map[string]*auth.Credential{}}
}

func credentialKey(username string, method auth.Method) string {
	return username + "|" + string(method)
}

func (f *fakeCredentialRepository) Find(_ context.Context, username string, method auth.Method) (*auth.Credential, error) {
	if credential, ok := f.credentials[credentialKey(username, method)]; ok {
		return credential, nil
	}
	return nil, apperr.NotFound("Credential")
}

func (f *fakeCredentialRepository) UpdateSecret(_ context.Context, username string, method auth.Method, newHash string) error {
	credential, ok := f.credentials[credentialKey(username, method)]
	if !ok {
		return apperr.NotFound("Credential")
	}
	credential.SecretHash = newHash
	return nil
}

type fakeStores struct {
	userRepo       *fakeUserRepository
	credentialRepo *fakeCredentialRepository
}

// CreateWithCredential lives on the user repository in production; the fake
// shares state between the two maps the same way the transaction does.
func (f *fakeStores) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return f.userRepo.FindByID(ctx, id)
}

func (f *fakeStores) FindByNick(ctx context.Context, nick string) (*auth.User, error) {
	return f.userRepo.FindByNick(ctx, nick)
}

func (f *fakeStores) CreateWithCredential(_ context.Context, user *auth.User, credential *auth.Credential) error {
	f.userRepo.users[user.ID] = user
	f.credentialRepo.credentials[credentialKey(credential.Username, credential.Method)] = credential
	return nil
}

type fakeCodeRepository struct {
	codes map[string]*auth.VerificationCode // keyed by username|purpose
}

func newFakeCodeRepository() *fakeCodeRepository {
	return &fakeCodeRepository{codes: map[string]*auth.VerificationCode{}}
}

func codeKey(username string, purpose auth.Purpose) string {
	return username + "|" + string(purpose)
}

func (f *fakeCodeRepository) Upsert(_ context.Context, code *auth.VerificationCode) error {
	f.codes[codeKey(code.Username, code.Purpose)] = code
	return nil
}

func (f *fakeCodeRepository) Find(_ context.Context, username string, purpose auth.Purpose) (*auth.VerificationCode, error) {
	if code, ok := f.codes[codeKey(username, purpose)]; ok {
		return code, nil
	}
	return nil, apperr.NotFound("Verification code")
}

func (f *fakeCodeRepository) Delete(_ context.Context, username string, purpose auth.Purpose) error {
	delete(f.codes, codeKey(username, purpose))
	return nil
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]bool{}}
}

func (f *fakeBlacklist) Add(_ context.Context, token string, _ time.Duration) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeBlacklist) Contains(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

// fakeSender captures outgoing mail so tests can read the delivered code.
type fakeSender struct {
	sentTo   []string
	lastBody string
}

func (f *fakeSender) Send(to, _, body string) error {
	f.sentTo = append(f.sentTo, to)
	f.lastBody = body
	return nil
}

var codePattern = regexp.MustCompile(`<strong>([A-Za-z0-9]+)</strong>`)

func (f *fakeSender) lastCode(t *testing.T) string {
	t.Helper()
	match := codePattern.FindStringSubmatch(f.lastBody)
	require.Len(t, match, 2, "expected a code in the mail body")
	return match[1]
}

// # Harness

type testHarness struct {
	service   *auth.Service
	users     *fakeUserRepository
	creds     *fakeCredentialRepository
	codes     *fakeCodeRepository
	blacklist *fakeBlacklist
	sender    *fakeSender
	tokens    *sec.TokenService
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "vidora.test")
	require.NoError(t, err)

	users := newFakeUserRepository()
	creds := newFakeCredentialRepository()
	codes := newFakeCodeRepository()
	blacklist := newFakeBlacklist()
	sender := &fakeSender{}

	stores := &fakeStores{userRepo: users, credentialRepo: creds}
	service := auth.NewService(stores, creds, codes, blacklist, tokens, sender)

	return &testHarness{
		service:   service,
		users:     users,
		creds:     creds,
		codes:     codes,
		blacklist: blacklist,
		sender:    sender,
		tokens:    tokens,
	}
}

// signUp walks the full enrollment flow and returns the opened session.
func (h *testHarness) signUp(t *testing.T, email, password, nick string) *auth.Session {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, h.service.RequestSignUp(ctx, email))
	flowToken, err := h.service.VerifySignUp(ctx, email, h.sender.lastCode(t))
	require.NoError(t, err)

	session, err := h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{
		Token:    flowToken,
		Password: password,
		Nick:     nick,
	})
	require.NoError(t, err)
	return session
}

func reasonCode(t *testing.T, err error) string {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.Code
}

// # Sign-Up Flow

/*
TestAuth_SignUp_HappyPath walks request → verify → confirm and checks the
resulting session token authenticates requests.
*/
func TestAuth_SignUp_HappyPath(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	session := h.signUp(t, "ana@example.com", "sup3rsecret", "ana")

	// 1. Account and credential exist
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Equal(t, "ana", session.User.Nick)
	assert.Equal(t, sec.RoleMember, session.User.Role)

	// 2. The session token passes full verification
	claims, err := h.service.VerifyAccessToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, sec.PurposeSession, claims.Purpose)

	// 3. The verification code was consumed
	_, err = h.codes.Find(ctx, "ana@example.com", auth.PurposeSignUp)
	assert.Error(t, err)
}

/*
TestAuth_RequestSignUp_Malformed rejects non-email usernames before any code
is generated or delivered.
*/
func TestAuth_RequestSignUp_Malformed(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		code     string
	}{
		{"empty", "", auth.CodeUsernameEmpty},
		{"whitespace", "   ", auth.CodeUsernameEmpty},
		{"not an email", "not-an-email", auth.CodeUsernameMalformed},
		{"phone shaped", "+79001234567", auth.CodeUsernameMalformed},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := h.service.RequestSignUp(ctx, testCase.username)
			require.Error(t, err)
			assert.Equal(t, testCase.code, reasonCode(t, err))
		})
	}

	// No code stored, no mail sent
	assert.Empty(t, h.codes.codes)
	assert.Empty(t, h.sender.sentTo)
}

/*
TestAuth_RequestSignUp_AlreadyRegistered returns Conflict for a registered email.
*/
func TestAuth_RequestSignUp_AlreadyRegistered(t *testing.T) {
	h := newTestHarness(t)
	h.signUp(t, "ana@example.com", "sup3rsecret", "ana")

	err := h.service.RequestSignUp(context.Background(), "ana@example.com")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", reasonCode(t, err))
}

/*
TestAuth_VerifySignUp_Errors checks the fixed failure order: missing row,
wrong length, wrong code, expired code.
*/
func TestAuth_VerifySignUp_Errors(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	// 1. No pending code at all
	_, err := h.service.VerifySignUp(ctx, "ana@example.com", "ABC123")
	assert.Equal(t, "NOT_FOUND", reasonCode(t, err))

	// 2. Issue a real code
	require.NoError(t, h.service.RequestSignUp(ctx, "ana@example.com"))
	code := h.sender.lastCode(t)

	// 3. Wrong length beats wrong value
	_, err = h.service.VerifySignUp(ctx, "ana@example.com", "AB")
	assert.Equal(t, auth.CodeLengthNotCorrect, reasonCode(t, err))

	// 4. Right length, wrong value
	wrong := "AAAAAA"
	if wrong == code {
		wrong = "BBBBBB"
	}
	_, err = h.service.VerifySignUp(ctx, "ana@example.com", wrong)
	assert.Equal(t, auth.CodeNotCorrect, reasonCode(t, err))

	// 5. Correct code still works after failed attempts
	_, err = h.service.VerifySignUp(ctx, "ana@example.com", code)
	require.NoError(t, err)

	// 6. The code was single-use
	_, err = h.service.VerifySignUp(ctx, "ana@example.com", code)
	assert.Equal(t, "NOT_FOUND", reasonCode(t, err))
}

/*
TestAuth_VerifySignUp_Expiry checks both sides of the 10-minute window: a code
near the edge but inside is accepted, one past the edge is rejected with
CODE_NOT_VALID.
*/
func TestAuth_VerifySignUp_Expiry(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	plainCode := "Xy7kQ2"
	codeHash, err := sec.HashSecret(plainCode)
	require.NoError(t, err)

	// 1. Just inside the window: still valid
	require.NoError(t, h.codes.Upsert(ctx, &auth.VerificationCode{
		Username: "ana@example.com",
		Purpose:  auth.PurposeSignUp,
		CodeHash: codeHash,
		IssuedAt: time.Now().Add(-auth.VerificationCodeTTL + 5*time.Second),
	}))
	_, err = h.service.VerifySignUp(ctx, "ana@example.com", plainCode)
	require.NoError(t, err)

	// 2. Just past the window: CODE_NOT_VALID
	require.NoError(t, h.codes.Upsert(ctx, &auth.VerificationCode{
		Username: "ana@example.com",
		Purpose:  auth.PurposeSignUp,
		CodeHash: codeHash,
		IssuedAt: time.Now().Add(-auth.VerificationCodeTTL - time.Second),
	}))
	_, err = h.service.VerifySignUp(ctx, "ana@example.com", plainCode)
	assert.Equal(t, auth.CodeNotValid, reasonCode(t, err))
}

/*
TestAuth_ConfirmSignUp_ReplayToken ensures a consumed flow token cannot create
a second account.
*/
func TestAuth_ConfirmSignUp_ReplayToken(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	require.NoError(t, h.service.RequestSignUp(ctx, "ana@example.com"))
	flowToken, err := h.service.VerifySignUp(ctx, "ana@example.com", h.sender.lastCode(t))
	require.NoError(t, err)

	_, err = h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{
		Token:    flowToken,
		Password: "sup3rsecret",
		Nick:     "ana",
	})
	require.NoError(t, err)

	// Replaying the same flow token must fail even with a different nick:
	// the consumed token is blacklisted, so it is rejected as unauthorized
	// before the duplicate registration is ever considered.
	_, err = h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{
		Token:    flowToken,
		Password: "sup3rsecret",
		Nick:     "ana2",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", reasonCode(t, err))
}

/*
TestAuth_ConfirmSignUp_Validation covers weak passwords, missing nicks, taken
nicks, and garbage tokens.
*/
func TestAuth_ConfirmSignUp_Validation(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	h.signUp(t, "first@example.com", "sup3rsecret", "first")

	require.NoError(t, h.service.RequestSignUp(ctx, "ana@example.com"))
	flowToken, err := h.service.VerifySignUp(ctx, "ana@example.com", h.sender.lastCode(t))
	require.NoError(t, err)

	// 1. A garbage token never reaches the database
	_, err = h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{Token: "not-a-jwt", Password: "sup3rsecret", Nick: "ana"})
	assert.Equal(t, auth.CodeUsernameEmpty, reasonCode(t, err))

	// 2. Weak password
	_, err = h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{Token: flowToken, Password: "short", Nick: "ana"})
	assert.Equal(t, auth.CodePasswordTooWeak, reasonCode(t, err))

	// 3. Digits-only password is also weak
	_, err = h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{Token: flowToken, Password: "12345678", Nick: "ana"})
	assert.Equal(t, auth.CodePasswordTooWeak, reasonCode(t, err))

	// 4. Taken nick
	_, err = h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{Token: flowToken, Password: "sup3rsecret", Nick: "first"})
	assert.Equal(t, auth.CodeNickTaken, reasonCode(t, err))

	// 5. The token survives failed attempts and still confirms
	session, err := h.service.ConfirmSignUp(ctx, auth.ConfirmSignUpInput{Token: flowToken, Password: "sup3rsecret", Nick: "ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana", session.User.Nick)
}

// # Sign-In

/*
TestAuth_SignIn verifies the anti-enumeration contract: an unknown identity
and a wrong password are indistinguishable.
*/
func TestAuth_SignIn(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	h.signUp(t, "ana@example.com", "sup3rsecret", "ana")

	// 1. Unknown email
	_, err := h.service.SignIn(ctx, "ghost@example.com", "sup3rsecret")
	assert.Equal(t, auth.CodePasswordIncorrect, reasonCode(t, err))

	// 2. Wrong password, same reason code
	_, err = h.service.SignIn(ctx, "ana@example.com", "wrongpass1")
	assert.Equal(t, auth.CodePasswordIncorrect, reasonCode(t, err))

	// 3. Correct credentials
	session, err := h.service.SignIn(ctx, "ana@example.com", "sup3rsecret")
	require.NoError(t, err)
	assert.Equal(t, "ana", session.User.Nick)

	claims, err := h.service.VerifyAccessToken(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
}

/*
TestAuth_SignOut verifies revocation: a signed-out token fails verification
before its natural expiry, and sign-out is idempotent.
*/
func TestAuth_SignOut(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	session := h.signUp(t, "ana@example.com", "sup3rsecret", "ana")

	// 1. Token works before sign-out
	_, err := h.service.VerifyAccessToken(ctx, session.Token)
	require.NoError(t, err)

	// 2. Sign out and verify rejection
	require.NoError(t, h.service.SignOut(ctx, session.Token))
	_, err = h.service.VerifyAccessToken(ctx, session.Token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", reasonCode(t, err))

	// 3. Idempotent: repeating is a no-op
	assert.NoError(t, h.service.SignOut(ctx, session.Token))

	// 4. Garbage tokens are also a no-op
	assert.NoError(t, h.service.SignOut(ctx, "not-a-jwt"))
}

/*
TestAuth_VerifyAccessToken_RejectsFlowTokens ensures a flow token can never be
used as a session token.
*/
func TestAuth_VerifyAccessToken_RejectsFlowTokens(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	require.NoError(t, h.service.RequestSignUp(ctx, "ana@example.com"))
	flowToken, err := h.service.VerifySignUp(ctx, "ana@example.com", h.sender.lastCode(t))
	require.NoError(t, err)

	_, err = h.service.VerifyAccessToken(ctx, flowToken)
	require.Error(t, err)
}

// # Password Recovery

/*
TestAuth_ResetFlow rotates a password end to end and checks the old password
stops working while the new one signs in.
*/
func TestAuth_ResetFlow(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()
	h.signUp(t, "ana@example.com", "sup3rsecret", "ana")

	// 1. Request and verify a reset code
	require.NoError(t, h.service.RequestReset(ctx, "ana@example.com"))
	flowToken, err := h.service.VerifyReset(ctx, "ana@example.com", h.sender.lastCode(t))
	require.NoError(t, err)

	// 2. Rotate the password
	require.NoError(t, h.service.ConfirmReset(ctx, flowToken, "newsecret99"))

	// 3. Old password rejected, new one accepted
	_, err = h.service.SignIn(ctx, "ana@example.com", "sup3rsecret")
	assert.Equal(t, auth.CodePasswordIncorrect, reasonCode(t, err))

	_, err = h.service.SignIn(ctx, "ana@example.com", "newsecret99")
	require.NoError(t, err)

	// 4. The reset token is single-use
	err = h.service.ConfirmReset(ctx, flowToken, "another99pass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", reasonCode(t, err))
}

/*
TestAuth_RequestReset_UnknownIdentity silently succeeds so the endpoint cannot
be used to enumerate accounts.
*/
func TestAuth_RequestReset_UnknownIdentity(t *testing.T) {
	h := newTestHarness(t)

	err := h.service.RequestReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, h.sender.sentTo)
}

/*
TestAuth_CrossFlowToken ensures a signup flow token cannot confirm a reset.
*/
func TestAuth_CrossFlowToken(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	require.NoError(t, h.service.RequestSignUp(ctx, "ana@example.com"))
	signupToken, err := h.service.VerifySignUp(ctx, "ana@example.com", h.sender.lastCode(t))
	require.NoError(t, err)

	err = h.service.ConfirmReset(ctx, signupToken, "newsecret99")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", reasonCode(t, err))
}
