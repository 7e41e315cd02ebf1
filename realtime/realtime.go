package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/models"
)

var (
	categoryClients = make(map[string]map[*websocket.Conn]bool) // Map of category ID to connected admin consoles
	broadcast       = make(chan StatusUpdate)                   // Broadcast channel for updates
	mutex           sync.Mutex                                  // Mutex to protect categoryClients map
)

// StatusUpdate represents a submission review-state change pushed to the
// admin console
type StatusUpdate struct {
	CategoryID string                  `json:"category_id"`
	Submission models.Submission       `json:"submission"`
	From       models.SubmissionStatus `json:"from"`
	To         models.SubmissionStatus `json:"to"`
}

// RegisterClient adds a WebSocket client to a specific category room
func RegisterClient(categoryID string, conn *websocket.Conn) {
	mutex.Lock()
	if categoryClients[categoryID] == nil {
		categoryClients[categoryID] = make(map[*websocket.Conn]bool)
	}
	categoryClients[categoryID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific category room
func UnregisterClient(categoryID string, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := categoryClients[categoryID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(categoryClients, categoryID)
		}
	}
	mutex.Unlock()
}

// BroadcastStatusUpdate sends an update to all clients watching the
// submission's category
func BroadcastStatusUpdate(update StatusUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := categoryClients[update.CategoryID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

// Bridge adapts the broadcast channel to the status service's Broadcaster
// interface
type Bridge struct{}

func (Bridge) SubmissionStatusChanged(submission *models.Submission, from models.SubmissionStatus) {
	go BroadcastStatusUpdate(StatusUpdate{
		CategoryID: submission.CategoryID,
		Submission: *submission,
		From:       from,
		To:         submission.Status,
	})
}

func init() {
	go handleBroadcast()
}
