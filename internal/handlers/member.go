package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/skanderbz/batitrack/internal/middleware"
	"github.com/skanderbz/batitrack/internal/services"
	"github.com/skanderbz/batitrack/pkg/response"
	"gorm.io/gorm"
)

type MemberHandler struct {
	accessService *services.AccessService
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{
		accessService: services.NewAccessService(db),
	}
}

// List returns all members of a project
// GET /api/projects/:id/members
func (h *MemberHandler) List(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	members, err := h.accessService.ListMembers(projectID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

// Invite adds an existing user to a project by email (owner only)
// POST /api/projects/:id/members
func (h *MemberHandler) Invite(c *gin.Context) {
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req services.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invitee email is required")
		return
	}

	member, err := h.accessService.Invite(projectID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member)
}
