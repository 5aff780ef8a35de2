package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MrJoeKr/arcane-estates/internal/game"
	"github.com/MrJoeKr/arcane-estates/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Hub fans room events out to the websocket clients of one room. Client
// intents flow the other way, from the read pumps into the room.
type Hub struct {
	room       *room.Room
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	logger     *zap.Logger
}

func newHub(rm *room.Room, logger *zap.Logger) *Hub {
	h := &Hub{
		room:       rm,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
		logger:     logger.With(zap.String("room_code", rm.Code)),
	}
	rm.SetEmit(func(e room.Event) {
		data, err := json.Marshal(e)
		if err != nil {
			h.logger.Error("failed to marshal event", zap.Error(err))
			return
		}
		select {
		case h.broadcast <- data:
		default:
			h.logger.Warn("broadcast buffer full, dropping event")
		}
	})
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("client connected", zap.String("player_id", client.playerID))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.room.Leave(client.playerID)
				h.logger.Info("client disconnected", zap.String("player_id", client.playerID))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *Hub) stop() {
	close(h.done)
}

// Client is one websocket connection bound to a player identity.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID string
}

// intentMessage is the envelope for every client-to-server message.
type intentMessage struct {
	Type       string        `json:"type"`
	Token      string        `json:"token,omitempty"`
	SpaceIndex int           `json:"spaceIndex,omitempty"`
	Amount     int           `json:"amount,omitempty"`
	Trade      *tradePayload `json:"trade,omitempty"`
}

type tradePayload struct {
	ToID              string `json:"toId"`
	OfferProperties   []int  `json:"offerProperties"`
	OfferCrowns       int    `json:"offerCrowns"`
	RequestProperties []int  `json:"requestProperties"`
	RequestCrowns     int    `json:"requestCrowns"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		var msg intentMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.logger.Warn("malformed client message", zap.Error(err))
			continue
		}
		c.dispatch(msg)
	}
}

// dispatch routes one intent to the room. Unknown types are ignored; the
// room applies its own turn and phase guards.
func (c *Client) dispatch(msg intentMessage) {
	rm := c.hub.room
	switch msg.Type {
	case "select_token":
		rm.SelectToken(c.playerID, msg.Token)
	case "start_game":
		if err := rm.StartGame(c.playerID); err != nil {
			c.hub.logger.Debug("start rejected", zap.String("player_id", c.playerID), zap.Error(err))
		}
	case "roll_dice":
		rm.RollDice(c.playerID)
	case "buy_property":
		rm.BuyProperty(c.playerID)
	case "decline_property":
		rm.DeclineProperty(c.playerID)
	case "build_tower":
		rm.BuildTower(c.playerID, msg.SpaceIndex)
	case "sell_tower":
		rm.SellTower(c.playerID, msg.SpaceIndex)
	case "mortgage":
		rm.Mortgage(c.playerID, msg.SpaceIndex)
	case "unmortgage":
		rm.Unmortgage(c.playerID, msg.SpaceIndex)
	case "propose_trade":
		if msg.Trade != nil {
			rm.ProposeTrade(c.playerID, game.TradeOffer{
				ToID:              msg.Trade.ToID,
				OfferProperties:   msg.Trade.OfferProperties,
				OfferCrowns:       msg.Trade.OfferCrowns,
				RequestProperties: msg.Trade.RequestProperties,
				RequestCrowns:     msg.Trade.RequestCrowns,
			})
		}
	case "accept_trade":
		rm.AcceptTrade(c.playerID)
	case "reject_trade":
		rm.RejectTrade(c.playerID)
	case "auction_bid":
		rm.PlaceBid(c.playerID, msg.Amount)
	case "auction_pass":
		rm.PassAuction(c.playerID)
	case "pay_jail_fine":
		rm.PayJailFine(c.playerID)
	case "use_escape_card":
		rm.UseEscapeCard(c.playerID)
	case "end_turn":
		rm.EndTurn(c.playerID)
	default:
		c.hub.logger.Debug("unknown message type", zap.String("type", msg.Type))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
