package main

import (
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/icza/csdem/demo"
	"github.com/icza/csdem/observer"
)

const viewerHTML = `<!DOCTYPE html>
<html><head><title>csdem watch</title></head>
<body style="font-family: monospace; background: #111; color: #ddd">
<pre id="log"></pre>
<script>
var ws = new WebSocket("ws://" + location.host + "/ws");
var log = document.getElementById("log");
ws.onmessage = function(ev) {
  log.textContent += ev.data + "\n";
  window.scrollTo(0, document.body.scrollHeight);
};
</script>
</body></html>`

// wsObserver fans every traceEvent out to every connected websocket
// client. It wraps a traceObserver whose encoder writes straight into
// the hub: each encoded NDJSON line is one hub.Write call, which the
// hub sends to every client as one text message.
type wsObserver struct {
	*traceObserver
}

type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *hub) add(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	c.Close()
}

func (h *hub) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, p); err != nil {
			go h.remove(c)
		}
	}
	return len(p), nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func newWatchCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Stream a decoded demo's trace to a browser over a websocket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8642", "address to serve the viewer on")
	return cmd
}

func runWatch(path, addr string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	h := newHub()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(viewerHTML))
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warningf("watch: upgrade failed: %v", err)
			return
		}
		h.add(conn)
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Infof("watch: serving viewer at http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("watch: server: %v", err)
		}
	}()

	var obs observer.Observer = &wsObserver{traceObserver: newTraceObserver(h)}
	d, err := demo.New(data, obs, nil, log)
	if err != nil {
		return err
	}
	for {
		ok, err := d.Advance()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}
