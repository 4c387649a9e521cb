package handlers

import (
	"github.com/elitestore/storefront/internal/cart"
	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// CartHandler serves guest carts keyed by the X-Session-ID header. Each
// session gets its own reducer store persisted under "cart:<session>" so a
// returning guest rehydrates the same cart.
type CartHandler struct {
	stores *sessionCache[*cart.Store]
}

func NewCartHandler(backend storage.Backend) *CartHandler {
	return &CartHandler{
		stores: newSessionCache(maxSessionStores, func(sid string) *cart.Store {
			return cart.NewStore(backend, "cart:"+sid)
		}),
	}
}

func (h *CartHandler) store(sessionID string) *cart.Store {
	return h.stores.get(sessionID)
}

func (h *CartHandler) sessionID(c *fiber.Ctx) (string, error) {
	sid := c.Get("X-Session-ID")
	if sid == "" {
		return "", c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: X-Session-ID",
		})
	}
	return sid, nil
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	return c.JSON(h.store(sid).State())
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	var item cart.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if item.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: productId",
		})
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	state, err := h.store(sid).Dispatch(cart.AddItem(item))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save cart",
		})
	}
	return c.JSON(state)
}

type updateCartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// UpdateItem sets a line's quantity; zero removes the line.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: productId",
		})
	}

	key := cart.Item{ProductID: req.ProductID, Size: req.Size, Color: req.Color}.Key()
	state, err := h.store(sid).Dispatch(cart.UpdateQuantity(key, req.Quantity))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save cart",
		})
	}
	return c.JSON(state)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	productID := c.Query("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing required field: productId",
		})
	}

	key := cart.Item{
		ProductID: productID,
		Size:      c.Query("size"),
		Color:     c.Query("color"),
	}.Key()

	state, err := h.store(sid).Dispatch(cart.RemoveItem(key))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save cart",
		})
	}
	return c.JSON(state)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid, err := h.sessionID(c)
	if sid == "" {
		return err
	}

	state, err := h.store(sid).Dispatch(cart.Clear())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save cart",
		})
	}
	return c.JSON(state)
}
