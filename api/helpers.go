package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/weedbox/pokerdirector"
	"github.com/weedbox/pokerdirector/seat_manager"
	"github.com/weedbox/pokerdirector/shortener"
	"github.com/weedbox/pokerdirector/store"
)

const (
	ownerHeader  = "X-Owner-ID"
	maxBodyBytes = 1_048_576
)

type envelope map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// readOptionalJSON accepts an empty body and leaves dst untouched.
func readOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.ContentLength == 0 {
		return nil
	}
	return readJSON(w, r, dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	if err := writeJSON(w, status, envelope{"error": message}); err != nil {
		s.logger.Error("failed to write error response", "method", r.Method, "path", r.URL.Path, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// handleError maps domain errors onto HTTP status codes.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pokerdirector.ErrManagerTournamentNotFound),
		errors.Is(err, store.ErrRecordNotFound),
		errors.Is(err, shortener.ErrTokenNotFound):
		s.errorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, pokerdirector.ErrNotOwner),
		errors.Is(err, store.ErrNotOwner):
		s.errorResponse(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, pokerdirector.ErrInvalidActionPayload),
		errors.Is(err, pokerdirector.ErrInvalidParam):
		s.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, pokerdirector.ErrStoreUnavailable):
		s.errorResponse(w, r, http.StatusServiceUnavailable, err.Error())
	case isRejection(err):
		s.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		s.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
	}
}

var rejections = []error{
	pokerdirector.ErrEmptySchedule,
	pokerdirector.ErrInvalidPlayer,
	pokerdirector.ErrPlayerNotFound,
	pokerdirector.ErrPlayerAlreadyExists,
	pokerdirector.ErrPlayerEliminated,
	pokerdirector.ErrRebuyClosed,
	pokerdirector.ErrMaxRebuysReached,
	pokerdirector.ErrAddOnClosed,
	pokerdirector.ErrMaxAddOnsReached,
	pokerdirector.ErrLevelNotFound,
	pokerdirector.ErrInvalidDuration,
	pokerdirector.ErrNoActivePlayers,
	pokerdirector.ErrDirectorClosed,
	seat_manager.ErrNotEnoughSeats,
	seat_manager.ErrInvalidTableCount,
	seat_manager.ErrTableNotFound,
	seat_manager.ErrLastTable,
	seat_manager.ErrDuplicatePlayers,
}

func isRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func ownerID(r *http.Request) string {
	return r.Header.Get(ownerHeader)
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) == 0 {
		return nil, errors.New("body must not be empty")
	}
	return body, nil
}

func nowUnix() int64 {
	return time.Now().Unix()
}
