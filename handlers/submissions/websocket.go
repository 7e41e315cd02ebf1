package submissions

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/realtime"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WatchCategory streams review-state changes for a category to the admin console
// @Summary Watch a category's review activity
// @Description Upgrade to a WebSocket delivering status-change events for the category
// @Tags Review
// @Param category_id path string true "Category ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {object} map[string]string
// @Router /submissions/ws/{category_id} [get]
// @Security Bearer
func (h *Handler) WatchCategory(c *gin.Context) {
	caller := callerFromRequest(c)
	if !caller.IsAdmin() {
		handleServiceError(c, services.ErrForbidden)
		return
	}

	categoryID := c.Param("category_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(categoryID, conn)
	defer func() {
		realtime.UnregisterClient(categoryID, conn)
		conn.Close()
	}()

	// Hold the connection open; the broadcast loop writes updates. A read
	// error means the console went away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
