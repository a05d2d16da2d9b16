package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"erp-admin-api-server/internal/auth"
	"erp-admin-api-server/internal/lookup"
	"erp-admin-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Maximum wait for a message from the client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub      *socket.Hub
	Autofill *lookup.Autofill
}

// kioskMessage is what a guard-booth kiosk streams while the document number
// is being typed.
type kioskMessage struct {
	NumeroDocumento string `json:"numeroDocumento"`
}

// autofillPush wraps a lookup result pushed back to the kiosk.
type autofillPush struct {
	Tipo      string        `json:"tipo"` // AUTOFILL
	Resultado lookup.Result `json:"resultado"`
}

// ServeWs upgrades the connection, joins the client to the broadcast feed and
// drives the debounced document lookup from its typed input. Only the result
// matching the latest input is ever pushed back.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := auth.ParseJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	clientID := claims.Email + "-" + uuid.New().String()[:8]

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	h.Hub.Register(clientID, conn)

	// The push goes through the hub's write pump, the connection's only
	// writer, so it cannot collide with a concurrent broadcast.
	searcher := lookup.NewSearcher(h.Autofill.Lookup, func(res lookup.Result) {
		payload, err := json.Marshal(autofillPush{Tipo: "AUTOFILL", Resultado: res})
		if err != nil {
			log.Printf("Failed to encode autofill result for %s: %v", clientID, err)
			return
		}
		h.Hub.Send(clientID, payload)
	})

	defer func() {
		searcher.Close()
		h.Hub.Unregister(clientID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error: %v", err)
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg kioskMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			// Not a lookup message; ignore.
			continue
		}
		searcher.Input(msg.NumeroDocumento)
	}
}
