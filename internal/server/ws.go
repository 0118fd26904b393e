package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/raysh454/caselookup/internal/fetcher"
	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/model"
)

const wsReadTimeout = 30 * time.Second

// handleLookupsWS accepts one JSON array of lookup bodies, streams a
// LookupEvent per element as each lookup finishes and ends with BatchDone.
// Invalid elements are reported immediately and never fetched.
func (s *Server) handleLookupsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	reqID := RequestIDFromContext(r.Context())

	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		s.logger.Warn("reading websocket batch", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		_ = conn.WriteJSON(model.ErrorResponse{Error: "batch must be a JSON array of lookup bodies"})
		return
	}
	if len(items) > s.cfg.MaxBatchSize {
		_ = conn.WriteJSON(model.ErrorResponse{Error: "batch too large"})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Keep reading so close frames are processed; a disconnect cancels
	// outstanding lookups.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	s.logger.Info("started websocket batch",
		logging.Field{Key: "request_id", Value: reqID},
		logging.Field{Key: "count", Value: len(items)})

	var (
		locators  []string
		indexes   []int
		succeeded int
		writeErr  error
	)
	send := func(v any) {
		if writeErr != nil {
			return
		}
		if writeErr = conn.WriteJSON(v); writeErr != nil {
			cancel()
		}
	}

	for i, item := range items {
		loc, err := s.locatorFromBody(item)
		if err != nil {
			msg := "internal error"
			var ve *validationError
			if errors.As(err, &ve) {
				msg = ve.msg
			}
			send(LookupEvent{Index: i, RequestID: uuid.NewString(), Error: msg})
			continue
		}
		locators = append(locators, loc)
		indexes = append(indexes, i)
	}

	s.fetcher.FetchBatch(ctx, locators, func(res fetcher.Result) {
		ev := LookupEvent{Index: indexes[res.Index], RequestID: uuid.NewString()}
		if res.Err != nil {
			_, ev.Error = lookupFailure(res.Err)
		} else {
			ev.Record = res.Record
			succeeded++
		}
		send(ev)
	})

	send(BatchDone{Done: true, Total: len(items), Succeeded: succeeded})

	if writeErr != nil {
		s.logger.Warn("websocket batch aborted",
			logging.Field{Key: "request_id", Value: reqID},
			logging.Field{Key: "error", Value: writeErr})
		return
	}
	s.logger.Info("finished websocket batch",
		logging.Field{Key: "request_id", Value: reqID},
		logging.Field{Key: "succeeded", Value: succeeded},
		logging.Field{Key: "total", Value: len(items)})
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
