package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core/user"
)

const testPassword = "Str0ngPassw0rd!"

func registerUser(t *testing.T, app testApp, uname string) user.User {
	t.Helper()
	rec := app.do(t, http.MethodPost, "/api/auth/register", "", user.NewUser{
		Email:    uname + "@test.io",
		Username: uname,
		Password: testPassword,
		FullName: "Test " + uname,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var usr user.User
	unmarshal(t, rec, &usr)
	return usr
}

func Test_userApi_register(t *testing.T) {
	app := setup(t)
	registerUser(t, app, "alice")

	tests := []httpTest{
		{
			name:     "duplicate email",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"email":"ALICE@test.io","username":"alice2","password":"Str0ngPassw0rd!","full_name":"Alice Two"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"Email already registered"}`),
		},
		{
			name:     "duplicate username",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"email":"other@test.io","username":"Alice","password":"Str0ngPassw0rd!","full_name":"Alice Two"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"username":"Username already taken"}`),
		},
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"email":"bob@test.io"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"username":"this field is required","password":"this field is required","full_name":"this field is required"}`),
		},
		{
			name:     "short password",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"email":"bob@test.io","username":"bob","password":"x1","full_name":"Bob"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"password":"password must contain at least 8 characters"}`),
		},
		{
			name:     "numeric password",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"email":"bob@test.io","username":"bob","password":"1234567890","full_name":"Bob"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"password":"password cannot be entirely numeric"}`),
		},
	}
	runHttpTests(t, app, tests)
}

func Test_userApi_login(t *testing.T) {
	app := setup(t)
	alice := registerUser(t, app, "alice")

	assert.Equal(t, "alice", alice.Username)
	assert.True(t, alice.IsActive)
	assert.Equal(t, user.DefaultTimezone, alice.Timezone)

	tests := []struct {
		name     string
		body     LoginRequest
		wantCode int
		wantErr  string
	}{
		{"by username", LoginRequest{Username: "alice", Password: testPassword}, http.StatusOK, ""},
		{"by email", LoginRequest{Email: "Alice@Test.io", Password: testPassword}, http.StatusOK, ""},
		{"wrong password", LoginRequest{Username: "alice", Password: "wrong-password"}, http.StatusUnauthorized, "Incorrect email or password"},
		{"unknown user", LoginRequest{Username: "nobody", Password: testPassword}, http.StatusUnauthorized, "Incorrect email or password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantErr != "" {
				var herr httpErr
				unmarshal(t, rec, &herr)
				assert.Equal(t, tt.wantErr, herr.Error)
				return
			}
			var res LoginResponse
			unmarshal(t, rec, &res)
			assert.NotEmpty(t, res.AccessToken)
			assert.Equal(t, "bearer", res.TokenType)
			require.NotNil(t, res.User)
			assert.Equal(t, alice.ID, res.User.ID)
			assert.False(t, res.User.LastLogin.IsZero())

			me := app.do(t, http.MethodGet, "/api/auth/me", res.AccessToken)
			assert.Equal(t, http.StatusOK, me.Code)
		})
	}
}

func Test_userApi_profile(t *testing.T) {
	app := setup(t)
	usr, token := app.createUser(t, "carol")

	rec := app.do(t, http.MethodGet, "/api/auth/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var me user.User
	unmarshal(t, rec, &me)
	assert.Equal(t, usr.ID, me.ID)

	tests := []struct {
		name     string
		body     string
		wantCode int
		check    func(t *testing.T, usr user.User)
	}{
		{
			name:     "valid profile",
			body:     `{"full_name":" Carol Smith ","learning_style":"Visual","study_goals":"Pass exams","timezone":"Europe/Paris"}`,
			wantCode: http.StatusOK,
			check: func(t *testing.T, usr user.User) {
				assert.Equal(t, "Carol Smith", usr.FullName)
				assert.Equal(t, "visual", usr.LearningStyle)
				assert.Equal(t, "Pass exams", usr.StudyGoals)
				assert.Equal(t, "Europe/Paris", usr.Timezone)
			},
		},
		{
			name:     "default timezone",
			body:     `{"full_name":"Carol"}`,
			wantCode: http.StatusOK,
			check: func(t *testing.T, usr user.User) {
				assert.Equal(t, user.DefaultTimezone, usr.Timezone)
				assert.Empty(t, usr.LearningStyle)
			},
		},
		{name: "unknown learning style", body: `{"full_name":"Carol","learning_style":"osmosis"}`, wantCode: http.StatusBadRequest},
		{name: "unknown timezone", body: `{"full_name":"Carol","timezone":"Mars/Olympus"}`, wantCode: http.StatusBadRequest},
		{name: "blank name", body: `{"full_name":"   "}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, "/api/auth/profile", token, []byte(tt.body))
			app.ServeHTTP(rec, req)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.check != nil {
				var got user.User
				unmarshal(t, rec, &got)
				tt.check(t, got)
			}
		})
	}
}

func Test_userApi_changePassword(t *testing.T) {
	app := setup(t)
	registerUser(t, app, "dave")

	rec := app.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Username: "dave", Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	var login LoginResponse
	unmarshal(t, rec, &login)

	tests := []httpTest{
		{
			name:     "wrong old password",
			method:   http.MethodPost,
			path:     "/api/auth/change-password",
			body:     []byte(`{"old_password":"nope","new_password":"An0therSecret!"}`),
			token:    login.AccessToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Incorrect password"}),
		},
		{
			name:     "weak new password",
			method:   http.MethodPost,
			path:     "/api/auth/change-password",
			body:     []byte(`{"old_password":"Str0ngPassw0rd!","new_password":"short"}`),
			token:    login.AccessToken,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"new_password":"password must contain at least 8 characters"}`),
		},
		{
			name:     "success",
			method:   http.MethodPost,
			path:     "/api/auth/change-password",
			body:     []byte(`{"old_password":"Str0ngPassw0rd!","new_password":"An0therSecret!"}`),
			token:    login.AccessToken,
			wantCode: http.StatusOK,
			wantData: []byte(`{"message":"Password updated successfully"}`),
		},
		{
			name:     "old password no longer works",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			body:     []byte(`{"username":"dave","password":"Str0ngPassw0rd!"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "Incorrect email or password"}),
		},
		{
			name:     "new password works",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			body:     []byte(`{"username":"dave","password":"An0therSecret!"}`),
			wantCode: http.StatusOK,
		},
	}
	runHttpTests(t, app, tests)
}

func Test_userApi_tokenRefreshAndInactive(t *testing.T) {
	app := setup(t)
	usr, token := app.createUser(t, "erin")

	rec := app.do(t, http.MethodPost, "/api/auth/token-refresh", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res LoginResponse
	unmarshal(t, rec, &res)
	assert.NotEmpty(t, res.AccessToken)
	assert.Nil(t, res.User)

	claims := app.auth.userClaims(usr, 1) // logged in back in 1970
	expired, err := app.auth.generateToken(claims)
	require.NoError(t, err)
	rec = app.do(t, http.MethodPost, "/api/auth/token-refresh", expired)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	usr.IsActive = false
	_, err = app.usrRepo.UpdateUser(context.Background(), usr)
	require.NoError(t, err)

	tests := []httpTest{
		{
			name:     "inactive user",
			method:   http.MethodGet,
			path:     "/api/auth/me",
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Inactive user"}),
		},
		{
			name:     "missing token",
			method:   http.MethodGet,
			path:     "/api/auth/me",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
	}
	runHttpTests(t, app, tests)
}
