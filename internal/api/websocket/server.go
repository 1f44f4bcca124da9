package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/courtsight/courtside/internal/cache"
	"github.com/courtsight/courtside/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server pushes refresh notifications to subscribed clients. Events arrive on
// the Redis streams the importer and scheduler publish to.
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	cache  *cache.RedisCache
}

// NewServer creates a new WebSocket server.
func NewServer(redisCache *cache.RedisCache) *Server {
	return &Server{
		hub:   NewHub(),
		cache: redisCache,
	}
}

// Start starts the WebSocket server and the stream relay.
func (s *Server) Start(port string) error {
	s.port = port

	go s.hub.Run()
	if s.cache != nil {
		go s.relayStreams(context.Background())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/updates", s.handleUpdates)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleUpdates handles WebSocket connections for refresh notifications.
func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// relayStreams tails the refresh and import streams and broadcasts each
// entry to connected clients.
func (s *Server) relayStreams(ctx context.Context) {
	client := s.cache.Client()
	lastIDs := map[string]string{
		publisher.StatsRefreshStream: "$",
		publisher.ImportStream:       "$",
	}

	for {
		if ctx.Err() != nil {
			return
		}

		streams := []string{publisher.StatsRefreshStream, publisher.ImportStream,
			lastIDs[publisher.StatsRefreshStream], lastIDs[publisher.ImportStream]}

		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: streams,
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if err != redis.Nil {
				log.Printf("[ws] stream read error: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, result := range results {
			for _, msg := range result.Messages {
				lastIDs[result.Stream] = msg.ID
				s.broadcastStreamMessage(result.Stream, msg)
			}
		}
	}
}

func (s *Server) broadcastStreamMessage(stream string, msg redis.XMessage) {
	data, _ := msg.Values["data"].(string)
	if data == "" {
		data = "null"
	}

	payload, err := json.Marshal(map[string]interface{}{
		"stream": stream,
		"id":     msg.ID,
		"data":   json.RawMessage(data),
	})
	if err != nil {
		log.Printf("[ws] encode broadcast: %v", err)
		return
	}

	s.hub.Broadcast(payload)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
