package analysisHandler

import (
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"time"
)

// handleNotifications keeps a client subscribed to the notification hub until
// it disconnects. Inbound messages are ignored.
func (h *AnalysisHandler) handleNotifications(c *websocket.Conn) {
	id := h.hub.Register(c)
	defer h.hub.Unregister(id)

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithFields(logrus.Fields{
					"client_id": id,
					"error":     err.Error(),
				}).Warn("Notification socket error")
			}
			break
		}
	}
}
