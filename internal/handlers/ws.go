package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/balaio-dev/balaio/internal/apperrors"
	"github.com/balaio-dev/balaio/internal/services"
	"github.com/balaio-dev/balaio/internal/types"
	"github.com/balaio-dev/balaio/internal/utils"
)

var (
	listClients   = make(map[uint]map[*websocket.Conn]bool)
	listClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastListRefresh tells every client watching the list to reload it.
// Called after any mutation of the list or its items.
func BroadcastListRefresh(listID uint) {
	listClientsMu.RLock()
	clients, exists := listClients[listID]
	if !exists || len(clients) == 0 {
		listClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	listClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":     "refresh",
			"mensagem": "Lista atualizada",
			"listaId":  listID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			listClientsMu.Lock()
			if clients, exists := listClients[listID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(listClients, listID)
				}
			}
			listClientsMu.Unlock()
			conn.Close()
		}
	}
}

// WebSocket upgrades the connection and streams refresh events for one
// list. The caller must have access to the list.
func WebSocket(c *gin.Context) {
	userID, ok := currentUserOrAbort(c)

	if !ok {
		return
	}

	listID, err := utils.GetListID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
		return
	}

	hasAccess, err := services.HasListAccess(listID, userID)

	if err != nil {
		respondError(c, err)
		return
	}

	if !hasAccess {
		respondError(c, apperrors.Forbidden("Usuário não tem acesso a esta lista"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	listClientsMu.Lock()
	if listClients[listID] == nil {
		listClients[listID] = make(map[*websocket.Conn]bool)
	}
	listClients[listID][conn] = true
	listClientsMu.Unlock()

	defer func() {
		listClientsMu.Lock()

		if clients, exists := listClients[listID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(listClients, listID)
			}
		}

		listClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for list %d", listID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]interface{}{
		"type":     "connected",
		"mensagem": "Conexão estabelecida",
		"listaId":  listID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for list %d: %v", listID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for list %d: %v", listID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for list %d: %v", listID, err)
			break
		}

		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for list %d: %v", listID, err)
			}
			break
		}
	}
}
