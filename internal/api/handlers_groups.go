package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cachium/internal/storage"
	"evalgo.org/cachium/models"
)

// listGroups handles GET /api/groups
func (s *Server) listGroups(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.ListGroups())
}

// getGroup handles GET /api/groups/:id
func (s *Server) getGroup(c echo.Context) error {
	id := c.Param("id")

	group, err := s.store.GetGroup(id)
	if err != nil {
		return GroupNotFoundError(id)
	}

	return c.JSON(http.StatusOK, group)
}

// createGroup handles POST /api/groups
func (s *Server) createGroup(c echo.Context) error {
	var req CreateGroupRequest

	if err := c.Bind(&req); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	memsize := models.DefaultMemsize
	if req.Memsize != nil {
		memsize = *req.Memsize
	}

	group, err := s.prov.CreateGroup(req.Name, memsize)
	if err != nil {
		return InternalError("failed to create group", err.Error())
	}

	s.BroadcastGroupEvent(EventGroupCreated, group)

	return c.JSON(http.StatusCreated, group)
}

// updateGroup handles PUT /api/groups/:id
func (s *Server) updateGroup(c echo.Context) error {
	id := c.Param("id")

	// Reject unknown identifiers before touching the body.
	if _, err := s.store.GetGroup(id); err != nil {
		return GroupNotFoundError(id)
	}

	var req UpdateGroupRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("invalid request body", err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	// Fields apply only when present and non-zero. An explicit empty name
	// or a memsize of 0 means "no change"; callers cannot zero out
	// memsize through this endpoint.
	group, err := s.store.UpdateGroup(id, func(g *models.Group) {
		if req.Name != nil && *req.Name != "" {
			g.Name = *req.Name
		}
		if req.Memsize != nil && *req.Memsize != 0 {
			g.Memsize = *req.Memsize
		}
	})
	if err != nil {
		// The group was deleted between the check above and the mutation.
		if errors.Is(err, storage.ErrNotFound) {
			return GroupNotFoundError(id)
		}
		return InternalError("failed to update group", err.Error())
	}

	s.BroadcastGroupEvent(EventGroupUpdated, group)

	// Updates respond with 201, not 200. Non-standard, but existing
	// clients depend on it.
	return c.JSON(http.StatusCreated, group)
}

// deleteGroup handles DELETE /api/groups/:id
func (s *Server) deleteGroup(c echo.Context) error {
	id := c.Param("id")

	if err := s.store.DeleteGroup(id); err != nil {
		return GroupNotFoundError(id)
	}

	s.BroadcastGroupEvent(EventGroupDeleted, map[string]string{"id": id})

	return c.NoContent(http.StatusNoContent)
}
