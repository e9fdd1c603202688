package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	authUC "github.com/khoahotran/devconnector/internal/application/usecase/auth"
	githubUC "github.com/khoahotran/devconnector/internal/application/usecase/github"
	profileUC "github.com/khoahotran/devconnector/internal/application/usecase/profile"
	"github.com/khoahotran/devconnector/internal/domain/user"
	"github.com/khoahotran/devconnector/internal/testutil"
	"github.com/khoahotran/devconnector/pkg/auth"
	"github.com/khoahotran/devconnector/pkg/logger"
	"github.com/khoahotran/devconnector/pkg/validation"
)

type stubRepos struct {
	body json.RawMessage
	err  error
}

func (s *stubRepos) ListRepositories(_ context.Context, _ string) (json.RawMessage, error) {
	return s.body, s.err
}

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *testutil.Store
	repos  *stubRepos
	owner  user.User
	token  string
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	hash, err := auth.HashPassword("secret123")
	s.Require().NoError(err)
	s.owner = user.User{ID: uuid.New(), Email: "jane@example.com", Name: "Jane Doe", Avatar: "//gravatar/jane", PasswordHash: hash}
	s.store = testutil.NewStore()
	s.store.AddUser(s.owner)
	s.repos = &stubRepos{body: json.RawMessage(`[{"name":"devconnector"}]`)}

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	validator := validation.New()
	profiles := profileUC.NewProfileUseCase(
		s.store.Profiles(), s.store.Users(), s.store.Posts(),
		validator, nil, profileUC.Options{}, log,
	)

	s.router = NewRouter(RouterConfig{
		JWT:            jwtSvc,
		AuthHandler:    NewAuthHandler(authUC.NewLoginUseCase(s.store.Users(), jwtSvc, log), log),
		ProfileHandler: NewProfileHandler(profiles, validator, log),
		GitHubHandler:  NewGitHubHandler(githubUC.NewFetchReposUseCase(s.repos, nil, time.Minute, log)),
		Logger:         log,
	})

	s.token, err = jwtSvc.GenerateToken(s.owner.ID)
	s.Require().NoError(err)
}

func (s *RouterTestSuite) do(method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var decoded map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &decoded)
	return rr, decoded
}

func (s *RouterTestSuite) createProfile() map[string]any {
	rr, body := s.do(http.MethodPost, "/api/profile", gin.H{
		"status": "Developer", "skills": "go, sql", "githubusername": "janedoe", "twitter": "@jane",
	}, s.token)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return body
}

func (s *RouterTestSuite) Test_Login() {
	rr, body := s.do(http.MethodPost, "/api/auth/login", gin.H{"email": s.owner.Email, "password": "wrong"}, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal("unauthorized", body["error"])

	rr, body = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": s.owner.Email, "password": "secret123"}, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.NotEmpty(body["access_token"])

	rr, _ = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": "not-an-email"}, "")
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *RouterTestSuite) Test_OwnRoutes_RequireToken() {
	rr, body := s.do(http.MethodGet, "/api/profile/me", nil, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Equal("unauthorized", body["error"])

	rr, _ = s.do(http.MethodGet, "/api/profile/me", nil, "garbage")
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *RouterTestSuite) Test_GetOwn_NotFoundBeforeUpsert() {
	rr, body := s.do(http.MethodGet, "/api/profile/me", nil, s.token)
	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal("not found", body["error"])
}

func (s *RouterTestSuite) Test_Upsert_RequiresStatusAndSkills() {
	rr, body := s.do(http.MethodPost, "/api/profile", gin.H{"company": "Acme"}, s.token)

	s.Require().Equal(http.StatusBadRequest, rr.Code)
	violations, ok := body["errors"].([]any)
	s.Require().True(ok)
	s.Len(violations, 2)
	first := violations[0].(map[string]any)
	s.Equal("status", first["param"])
	s.Equal("Status is required", first["msg"])
	s.Equal(0, s.store.ProfileCount())
}

func (s *RouterTestSuite) Test_Upsert_ThenRead() {
	created := s.createProfile()
	s.Equal([]any{"go", "sql"}, created["skills"])

	rr, body := s.do(http.MethodGet, "/api/profile/me", nil, s.token)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("Developer", body["status"])
	userObj := body["user"].(map[string]any)
	s.Equal("Jane Doe", userObj["name"])
	s.Equal("@jane", body["social"].(map[string]any)["twitter"])

	rr, body = s.do(http.MethodGet, "/api/profile/user/"+s.owner.ID.String(), nil, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("janedoe", body["githubusername"])

	rr, _ = s.do(http.MethodGet, "/api/profile", nil, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	var list []map[string]any
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &list))
	s.Len(list, 1)
}

func (s *RouterTestSuite) Test_GetByOwner_BadAndUnknownIdentifiers() {
	rr, body := s.do(http.MethodGet, "/api/profile/user/not-a-uuid", nil, "")
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal("invalid identifier", body["error"])

	rr, _ = s.do(http.MethodGet, "/api/profile/user/"+uuid.NewString(), nil, "")
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *RouterTestSuite) Test_Experience_AddAndRemove() {
	s.createProfile()

	rr, body := s.do(http.MethodPut, "/api/profile/experience", gin.H{"company": "Acme", "from": "2020-01-01"}, s.token)
	s.Require().Equal(http.StatusBadRequest, rr.Code)
	s.Len(body["errors"], 1)

	rr, _ = s.do(http.MethodPut, "/api/profile/experience", gin.H{"title": "Dev", "company": "Acme", "from": "last spring"}, s.token)
	s.Equal(http.StatusBadRequest, rr.Code)

	s.do(http.MethodPut, "/api/profile/experience", gin.H{"title": "Junior", "company": "Acme", "from": "2018-01-01"}, s.token)
	rr, body = s.do(http.MethodPut, "/api/profile/experience", gin.H{"title": "Senior", "company": "Acme", "from": "2021-06-01T00:00:00Z"}, s.token)
	s.Require().Equal(http.StatusOK, rr.Code)
	experience := body["experience"].([]any)
	s.Require().Len(experience, 2)
	head := experience[0].(map[string]any)
	s.Equal("Senior", head["title"])

	rr, _ = s.do(http.MethodDelete, "/api/profile/experience/"+uuid.NewString(), nil, s.token)
	s.Equal(http.StatusNotFound, rr.Code)

	rr, body = s.do(http.MethodDelete, "/api/profile/experience/"+head["id"].(string), nil, s.token)
	s.Require().Equal(http.StatusOK, rr.Code)
	experience = body["experience"].([]any)
	s.Require().Len(experience, 1)
	s.Equal("Junior", experience[0].(map[string]any)["title"])
}

func (s *RouterTestSuite) Test_Education_AddAndRemove() {
	s.createProfile()

	rr, body := s.do(http.MethodPut, "/api/profile/education", gin.H{
		"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "2010-09-01", "to": "2014-06-01",
	}, s.token)
	s.Require().Equal(http.StatusOK, rr.Code)
	education := body["education"].([]any)
	s.Require().Len(education, 1)
	id := education[0].(map[string]any)["id"].(string)

	rr, body = s.do(http.MethodDelete, "/api/profile/education/"+id, nil, s.token)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Empty(body["education"])
}

func (s *RouterTestSuite) Test_DeleteAccount() {
	s.createProfile()

	rr, body := s.do(http.MethodDelete, "/api/profile", nil, s.token)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("User deleted", body["msg"])
	s.Equal(0, s.store.ProfileCount())

	rr, _ = s.do(http.MethodPost, "/api/auth/login", gin.H{"email": s.owner.Email, "password": "secret123"}, "")
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *RouterTestSuite) Test_DeleteAccount_StoreFailureHidesCause() {
	s.store.Fail["posts.DeleteByOwner"] = errors.New("connection reset by peer")

	rr, body := s.do(http.MethodDelete, "/api/profile", nil, s.token)
	s.Equal(http.StatusInternalServerError, rr.Code)
	s.NotContains(rr.Body.String(), "connection reset")
	s.Equal("An internal server error occurred", body["message"])
}

func (s *RouterTestSuite) Test_GitHubRepos() {
	rr, _ := s.do(http.MethodGet, "/api/profile/github/janedoe", nil, "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.JSONEq(`[{"name":"devconnector"}]`, rr.Body.String())

	s.repos.err = errors.New("status 404")
	rr, body := s.do(http.MethodGet, "/api/profile/github/ghost", nil, "")
	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal("not found", body["error"])
}

func (s *RouterTestSuite) Test_Health() {
	rr, body := s.do(http.MethodGet, "/api/health", nil, "")
	s.Equal(http.StatusOK, rr.Code)
	s.Equal("UP", body["status"])
}
