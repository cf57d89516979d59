package backup

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"lifeos/internal/log"
)

const maxSnapshotBytes = 10 << 20

// NewHandler serves the save endpoint on top of store.
func NewHandler(store *FileStore, logger *log.Logger) http.Handler {
	h := &handler{store: store, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /save", h.save)
	mux.HandleFunc("GET /save", h.load)
	mux.HandleFunc("OPTIONS /save", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return cors(mux)
}

type handler struct {
	store  *FileStore
	logger *log.Logger
}

func (h *handler) save(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "snapshot too large"})
		return
	}
	if err := h.store.Write(body); err != nil {
		if errors.Is(err, ErrNotObject) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to write snapshot", log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save"})
		return
	}
	h.logger.InfoContext(r.Context(), "Snapshot saved", "bytes", len(body), "path", h.store.Path())
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *handler) load(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Read()
	if errors.Is(err, ErrNoSnapshot) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to read snapshot", log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

// cors allows the dashboard page to post from any origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
