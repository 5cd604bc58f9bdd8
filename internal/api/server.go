package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmill/internal/config"
	"taskmill/internal/domain"
	"taskmill/internal/infra/redisstore"
	"taskmill/internal/infra/sysclock"
	"taskmill/internal/lifecycle"
	"taskmill/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type transitionReq struct {
	To         domain.TaskStatus       `json:"to"`
	Comment    string                  `json:"comment"`
	NewDueDate *time.Time              `json:"new_due_date"`
	Reason     *domain.RejectionReason `json:"reason"`
}

func NewServer() *Server {
	ctx := context.Background()
	cfg := config.Load()

	cli := redisstore.New(cfg.Redis)
	if err := cli.Connect(ctx); err != nil {
		log.Ctx(ctx).Fatal().Msgf("something went wrong: %s", err)
	}

	clock := sysclock.Clock{}
	tasks := redisstore.NewTaskStore(cli)
	automations := redisstore.NewAutomationStore(cli)
	directory := redisstore.NewDirectory(cli)

	transitioner := usecase.Transitioner{Tasks: tasks, Directory: directory, Clock: clock}
	runner := usecase.Runner{Automations: automations, Tasks: tasks, Directory: directory, Clock: clock}

	r := chi.NewRouter()

	r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		t, err := tasks.Get(r.Context(), tenant(r), chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		if t == nil {
			writeErr(w, domain.ErrNotFound)
			return
		}
		now := clock.Now()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task":             t,
			"effective_status": lifecycle.EffectiveStatus(*t, now),
			"risk_indicator":   lifecycle.Risk(*t, now),
		})
	})

	r.Post("/tasks/{id}/transition", func(w http.ResponseWriter, r *http.Request) {
		var req transitionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		payload := domain.TransitionPayload{Comment: req.Comment, NewDueDate: req.NewDueDate, Reason: req.Reason}
		t, err := transitioner.Apply(r.Context(), tenant(r), chi.URLParam(r, "id"), req.To, payload, actor(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(t)
	})

	r.Get("/automations", func(w http.ResponseWriter, r *http.Request) {
		list, err := automations.List(r.Context(), tenant(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(list)
	})

	r.Post("/automations", func(w http.ResponseWriter, r *http.Request) {
		var a domain.Automation
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		created, err := runner.Create(r.Context(), tenant(r), a)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(created)
	})

	r.Patch("/automations/{id}", func(w http.ResponseWriter, r *http.Request) {
		var patch usecase.AutomationPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		updated, err := runner.Update(r.Context(), tenant(r), chi.URLParam(r, "id"), patch)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(updated)
	})

	r.Delete("/automations/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := runner.Delete(r.Context(), tenant(r), chi.URLParam(r, "id")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/automations/{id}/run", func(w http.ResponseWriter, r *http.Request) {
		t, err := runner.RunNow(r.Context(), tenant(r), chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(t)
	})

	r.Post("/engine/run", func(w http.ResponseWriter, r *http.Request) {
		executed, err := runner.RunEngine(r.Context(), tenant(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"executed": executed})
	})

	return &Server{router: r}
}

func tenant(r *http.Request) string {
	if t := r.Header.Get("X-Tenant-ID"); t != "" {
		return t
	}
	return "default"
}

func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor-ID"); a != "" {
		return a
	}
	return "anonymous"
}

func writeErr(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	var tErr *domain.InvalidTransitionError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &tErr):
		http.Error(w, tErr.Error(), http.StatusConflict)
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type Server struct {
	router *chi.Mux
}

// Run method of the Server struct runs the HTTP server on the specified port. It initializes
// a new HTTP server instance with the specified port and the server's router.
func (s *Server) Run(port int) {
	addr := fmt.Sprintf(":%d", port)

	h := chainMiddleware(
		s.router,
		recoverHandler,
		loggerHandler(func(w http.ResponseWriter, r *http.Request) bool { return r.URL.Path == "/" }),
		realIPHandler,
		requestIDHandler,
		corsHandler,
	)

	httpServer := http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("Server forced to shutdown")
		}

		close(done)
	}()

	log.Info().Msgf("server serving on port %d", port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to listen and serve")
	}

	<-done
	log.Info().Msg("Server stopped")
}
