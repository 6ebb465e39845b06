package nas

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/dwc-revival/nasd/nas/handshake"
	"github.com/dwc-revival/nasd/nas/transcript"
	"github.com/dwc-revival/nasd/std/log"
	"github.com/dwc-revival/nasd/std/utils"
)

const serverHeader = "Nintendo Wii (http)"

// DefaultNode is the NODE header value when none is configured.
const DefaultNode = "wifiappw3"

// Handler serves the NAS endpoints:
//
//	/ac  login (GET or POST)
//	/pr  word filter
//	any other GET is answered as a connection test
type Handler struct {
	builder    *handshake.Builder
	transcript *transcript.Logger
	metrics    *Metrics
	node       string
	mux        *http.ServeMux
}

// NewHandler creates a handler. metrics may be nil; an empty node
// falls back to DefaultNode.
func NewHandler(builder *handshake.Builder, tl *transcript.Logger, metrics *Metrics, node string) *Handler {
	h := &Handler{
		builder:    builder,
		transcript: tl,
		metrics:    metrics,
		node:       utils.FirstNonEmpty(node, DefaultNode),
		mux:        http.NewServeMux(),
	}
	h.mux.HandleFunc("/ac", h.serveLogin)
	h.mux.HandleFunc("/pr", h.serveWordFilter)
	h.mux.HandleFunc("/", h.serveConnTest)
	return h
}

func (h *Handler) String() string {
	return "nas-handler"
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// request reads both field sources and writes the transcript.
func (h *Handler) request(r *http.Request) (remote string, post, get handshake.Fields) {
	remote = remoteAddr(r)

	var err error
	if r.Method == http.MethodPost {
		body, rerr := io.ReadAll(r.Body)
		if rerr != nil {
			log.Warn(h, "Unable to read request body", "remote", remote, "err", rerr)
		}
		if post, err = handshake.ParseFields(string(body)); err != nil {
			log.Warn(h, "Malformed POST fields", "remote", remote, "err", err)
		}
	}
	if get, err = handshake.ParseFields(r.URL.RawQuery); err != nil {
		log.Warn(h, "Malformed GET fields", "remote", remote, "err", err)
	}

	if err := h.transcript.Log(r.Context(), remote, r.URL.Path, post, get); err != nil && h.metrics != nil {
		h.metrics.TranscriptErrors.Inc()
	}
	return
}

func (h *Handler) count(endpoint string) {
	if h.metrics != nil {
		h.metrics.Requests.WithLabelValues(endpoint).Inc()
	}
}

func (h *Handler) reply(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("NODE", h.node)
	w.Header().Set("Server", serverHeader)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}

func (h *Handler) serveLogin(w http.ResponseWriter, r *http.Request) {
	h.count("ac")
	remote, post, get := h.request(r)

	resp := h.builder.Build(post, get)
	if h.metrics != nil {
		h.metrics.Logins.Inc()
	}
	log.Info(h, "Login", "remote", remote, "fields", len(post)+len(get), "challenge", resp.Challenge)
	log.Debug(h, "Login response", "remote", remote, "authkey", resp.AuthKey)

	h.reply(w, resp.String())
}

func (h *Handler) serveWordFilter(w http.ResponseWriter, r *http.Request) {
	h.count("pr")
	remote, post, get := h.request(r)

	fields := append(post, get...)
	ret := h.builder.BuildWordFilter(fields)
	log.Debug(h, "Word filter", "remote", remote)

	h.reply(w, ret.Line())
}

func (h *Handler) serveConnTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		log.Warn(h, "Unknown path request", "path", r.URL.Path, "remote", remoteAddr(r))
		http.NotFound(w, r)
		return
	}
	h.count("conntest")

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("X-Organization", "Nintendo")
	w.Header().Set("Server", "BigIP")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

// remoteAddr prefers the first X-Forwarded-For entry over the peer address.
func remoteAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
