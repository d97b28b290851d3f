// Package server exposes curve generation and instrument pricing over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/etnz/payoff"
	"github.com/etnz/payoff/config"
	"github.com/etnz/payoff/renderer"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

// maxBody is the largest request body accepted.
const maxBody = 1 << 20

// Handler serves the API with the settings of cfg.
type Handler struct {
	cfg    *config.Config
	logger *log.Logger
}

// New returns a Handler. A nil logger discards logs.
func New(cfg *config.Config, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{cfg: cfg, logger: logger}
}

// Router returns the routes of the API.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthHandler).Methods("GET")
	r.HandleFunc("/api/curve", h.CurveHandler).Methods("POST")
	r.HandleFunc("/api/price", h.PriceHandler).Methods("POST")
	return r
}

// curveRequest is the optional curve object of a curve request, unset fields take the
// configured values.
type curveRequest struct {
	Type       string   `json:"type"`
	Margin     *float64 `json:"margin"`
	Step       *float64 `json:"step"`
	Components *bool    `json:"components"`
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

func (h *Handler) CurveHandler(w http.ResponseWriter, r *http.Request) {
	body, f, err := readFile(w, r)
	if err != nil {
		h.fail(w, r, bodyStatus(err), err)
		return
	}
	var req struct {
		Curve curveRequest `json:"curve"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid curve: %w", err))
		return
	}
	typ := payoff.PayoffCurve
	if req.Curve.Type != "" {
		if typ, err = payoff.ParseCurveType(req.Curve.Type); err != nil {
			h.fail(w, r, status(err), err)
			return
		}
	}
	opts := h.cfg.CurveOptions()
	if req.Curve.Margin != nil {
		opts.Margin = *req.Curve.Margin
	}
	if req.Curve.Step != nil {
		opts.Step = *req.Curve.Step
	}
	if req.Curve.Components != nil {
		opts.Components = *req.Curve.Components
	}

	setup, err := f.Build()
	if err != nil {
		h.fail(w, r, status(err), err)
		return
	}
	start := time.Now()
	c, err := setup.Portfolio.GenCurve(r.Context(), typ, opts)
	if err != nil {
		h.fail(w, r, status(err), err)
		return
	}
	if h.cfg.Verbose() {
		h.logger.Printf("%s curve of %d spots with %s in %v", typ, len(c.X), setup.Engine.Name(), time.Since(start))
	}
	data, err := renderer.CurveJSON(c)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, data)
}

func (h *Handler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	_, f, err := readFile(w, r)
	if err != nil {
		h.fail(w, r, bodyStatus(err), err)
		return
	}
	setup, err := f.Build()
	if err != nil {
		h.fail(w, r, status(err), err)
		return
	}
	quotes, err := payoff.Quotes(r.Context(), setup.Portfolio)
	if err != nil {
		h.fail(w, r, status(err), err)
		return
	}
	data, err := renderer.PricesJSON(quotes, h.cfg.Currency)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, data)
}

// readFile reads the request body and decodes it as a portfolio file.
func readFile(w http.ResponseWriter, r *http.Request) ([]byte, payoff.File, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return nil, payoff.File{}, fmt.Errorf("cannot read request: %w", err)
	}
	f, err := payoff.DecodeFile(bytes.NewReader(body))
	if err != nil {
		return nil, payoff.File{}, err
	}
	return body, f, nil
}

// bodyStatus maps an error reading the request body to the HTTP status answering it.
func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// status maps an error to the HTTP status answering it.
func status(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, payoff.ErrInvalidParameter),
		errors.Is(err, payoff.ErrMissingField),
		errors.Is(err, payoff.ErrInvalidEngine),
		errors.Is(err, payoff.ErrInconsistentMaturity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		h.logger.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ListenAndServe serves h on addr until ctx is done, then shuts the server down.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}
