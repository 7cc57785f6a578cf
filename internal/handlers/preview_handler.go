package handlers

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/BindingStudio/internal/geometry"
	previewws "github.com/saeid-a/BindingStudio/internal/websocket"
)

type sceneService interface {
	Scene(params geometry.ParamsInput, layout geometry.LayoutInput) (geometry.Scene, error)
}

type PreviewHandler struct {
	hub    *previewws.Hub
	scenes sceneService
}

func NewPreviewHandler(hub *previewws.Hub, scenes sceneService) *PreviewHandler {
	return &PreviewHandler{hub: hub, scenes: scenes}
}

func (h *PreviewHandler) RequireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}
	return c.Next()
}

func (h *PreviewHandler) HandleWebSocket(conn *websocket.Conn) {
	client := previewws.NewClient(h.hub, conn)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.scenes)
}
