package handlers

import (
	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/storage"
	"github.com/elitestore/storefront/internal/wishlist"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler serves guest wishlists keyed by the X-Session-ID header,
// persisted under "wishlist:<session>", a separate key space from carts.
type WishlistHandler struct {
	stores *sessionCache[*wishlist.Store]
}

func NewWishlistHandler(backend storage.Backend) *WishlistHandler {
	return &WishlistHandler{
		stores: newSessionCache(maxSessionStores, func(sid string) *wishlist.Store {
			return wishlist.NewStore(backend, "wishlist:"+sid)
		}),
	}
}

func (h *WishlistHandler) store(sessionID string) *wishlist.Store {
	return h.stores.get(sessionID)
}

func (h *WishlistHandler) sessionID(c *fiber.Ctx) (string, error) {
	sid := c.Get("X-Session-ID")
	if sid == "" {
		return "", c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: X-Session-ID",
		})
	}
	return sid, nil
}

func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	return c.JSON(h.store(sid).State())
}

// AddItem is idempotent: re-adding an id leaves the wishlist unchanged.
func (h *WishlistHandler) AddItem(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	var item wishlist.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if item.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: id",
		})
	}

	state, err := h.store(sid).Dispatch(wishlist.AddItem(item))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save wishlist",
		})
	}
	return c.JSON(state)
}

func (h *WishlistHandler) RemoveItem(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	id := c.Params("id")
	state, err := h.store(sid).Dispatch(wishlist.RemoveItem(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save wishlist",
		})
	}
	return c.JSON(state)
}

func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	state, err := h.store(sid).Dispatch(wishlist.Clear())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save wishlist",
		})
	}
	return c.JSON(state)
}
