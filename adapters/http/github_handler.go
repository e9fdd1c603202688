package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	githubUC "github.com/khoahotran/devconnector/internal/application/usecase/github"
)

type GitHubHandler struct {
	fetchRepos *githubUC.FetchReposUseCase
}

func NewGitHubHandler(uc *githubUC.FetchReposUseCase) *GitHubHandler {
	return &GitHubHandler{fetchRepos: uc}
}

// ListRepositories passes the provider's JSON through unchanged.
func (h *GitHubHandler) ListRepositories(c *gin.Context) {
	body, err := h.fetchRepos.Execute(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
