package server

import (
	"cinelist/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateWatchlist handles POST /api/watchlist/create
// @Summary Create watchlist
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.WatchlistRequest true "Watchlist"
// @Success 201 {object} models.Watchlist
// @Failure 400 {object} models.ErrorResponse
// @Router /watchlist/create [post]
func (s *Server) CreateWatchlist(c *fiber.Ctx) error {
	var req validation.WatchlistRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	w, err := s.watchlistService.Create(ctx, currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(w)
}

// ListWatchlists handles GET /api/watchlist
// @Summary List my watchlists
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Watchlist
// @Router /watchlist [get]
func (s *Server) ListWatchlists(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	lists, err := s.watchlistService.List(ctx, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(lists)
}

// GetWatchlist handles GET /api/watchlist/:id
// @Summary Get watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist ID"
// @Success 200 {object} models.Watchlist
// @Failure 404 {object} models.ErrorResponse
// @Router /watchlist/{id} [get]
func (s *Server) GetWatchlist(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	w, err := s.watchlistService.Get(ctx, currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(w)
}

// UpdateWatchlist handles PUT /api/watchlist/:id
// @Summary Update watchlist
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist ID"
// @Param request body validation.WatchlistRequest true "Watchlist"
// @Success 200 {object} models.Watchlist
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /watchlist/{id} [put]
func (s *Server) UpdateWatchlist(c *fiber.Ctx) error {
	var req validation.WatchlistRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	w, err := s.watchlistService.Update(ctx, currentUserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(w)
}

// DeleteWatchlist handles DELETE /api/watchlist/:id
// @Summary Delete watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist ID"
// @Success 200 {object} object{message=string,deleted=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /watchlist/{id} [delete]
func (s *Server) DeleteWatchlist(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.watchlistService.Delete(ctx, currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Watchlist deleted",
		"deleted": true,
	})
}

// AddItem handles POST /api/watchlist/:id/add-item
// @Summary Add item
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist ID"
// @Param request body validation.AddItemRequest true "Item"
// @Success 201 {object} models.WatchlistItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /watchlist/{id}/add-item [post]
func (s *Server) AddItem(c *fiber.Ctx) error {
	var req validation.AddItemRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := s.watchlistService.AddItem(ctx, currentUserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem handles PUT /api/watchlist/:id/items/:itemId
// @Summary Update item
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist ID"
// @Param itemId path string true "Item ID"
// @Param request body validation.UpdateItemRequest true "Fields to change"
// @Success 200 {object} models.WatchlistItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /watchlist/{id}/items/{itemId} [put]
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	var req validation.UpdateItemRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := s.watchlistService.UpdateItem(ctx, currentUserID(c), c.Params("id"), c.Params("itemId"), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(item)
}

// RemoveItem handles DELETE /api/watchlist/:id/items/:itemId
// @Summary Remove item
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} object{message=string,removed=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /watchlist/{id}/items/{itemId} [delete]
func (s *Server) RemoveItem(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.watchlistService.RemoveItem(ctx, currentUserID(c), c.Params("id"), c.Params("itemId")); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Item removed",
		"removed": true,
	})
}
