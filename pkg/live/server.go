package live

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Server upgrades HTTP requests into bridge sessions. Mount HandleWS on
// any router:
//
//	r := chi.NewRouter()
//	srv := live.NewServer(live.Config{Metrics: live.NewMetrics()})
//	r.Get("/ws", srv.HandleWS)
type Server struct {
	config   Config
	upgrader websocket.Upgrader
}

// NewServer creates a server handing each connection the config.
func NewServer(config Config) *Server {
	config = config.withDefaults()
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The bridge carries no credentials and mutates nothing but
			// its own mirror; origin policy belongs to the host app.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP makes the server mountable as a plain handler.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.HandleWS(w, r)
}

// HandleWS upgrades the request and runs a session until the client
// disconnects.
func (srv *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		srv.config.Logger.Error("websocket upgrade failed", "error", err)
		srv.config.Metrics.WebSocketError("upgrade")
		return
	}
	s := NewSession(conn, srv.config)
	go s.ReadLoop()
}
