package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Login(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	authService := NewAuthService(testAdmin, time.Hour, db)
	testToken := "test_token"
	authService.RandStringFunc = func(s int) (string, error) {
		return testToken, nil
	}
	handler := NewHandler(authService)

	// the login timestamp is taken inside the handler, so the stored
	// value can only be matched by pattern
	mock.Regexp().ExpectSet(sessionKeyPrefix+testToken, `\d+`, 0).SetVal("1")
	mock.ExpectSAdd(tokensSetKey, testToken).SetVal(1)

	body := fmt.Sprintf(
		`{"username":%q,"password":%q}`,
		testUsername, testPassword,
	)
	req := httptest.NewRequest(http.MethodPost, "/a/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.handleLogin(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), testToken)
}

func TestHandler_Login_WrongCredentials(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	handler := NewHandler(NewAuthService(testAdmin, time.Hour, db))

	req := httptest.NewRequest(
		http.MethodPost, "/a/login",
		strings.NewReader(`{"username":"testuser","password":"nope"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.handleLogin(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Login_EmptyFields(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	handler := NewHandler(NewAuthService(testAdmin, time.Hour, db))

	for name, body := range map[string]string{
		"empty username": `{"username":"","password":"testpass"}`,
		"empty password": `{"username":"testuser","password":""}`,
		"broken json":    `{{"username"`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/a/login", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.handleLogin(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandler_Logout_NoToken(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	handler := NewHandler(NewAuthService(testAdmin, time.Hour, db))

	req := httptest.NewRequest(http.MethodGet, "/a/logout", nil)
	rr := httptest.NewRecorder()
	handler.handleLogout(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_Logout(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	handler := NewHandler(NewAuthService(testAdmin, time.Hour, db))

	token := "some_token"
	mock.ExpectGet(sessionKeyPrefix + token).SetVal("1700000000")
	mock.ExpectSet(sessionKeyPrefix+token, 0, 0).SetVal("0")
	mock.ExpectSRem(tokensSetKey, token).SetVal(1)

	req := httptest.NewRequest(http.MethodGet, "/a/logout", nil)
	req.Header.Set("X-LIFTSTATS-TOKEN", token)
	rr := httptest.NewRecorder()
	handler.handleLogout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "logged-out", rr.Body.String())
}
