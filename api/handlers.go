package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/weedbox/pokerdirector"
	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/payout"
)

type createTournamentRequest struct {
	Name         string                            `json:"name"`
	Settings     *pokerdirector.TournamentSettings `json:"settings"`
	PlayerCount  int                               `json:"player_count"`  // 產生盲注結構用，0 表示使用預設值
	DurationMins int                               `json:"duration_mins"` // 產生盲注結構用，0 表示使用預設值
}

// tournamentView is the read model returned for a tournament.
type tournamentView struct {
	Tournament pokerdirector.TournamentState `json:"tournament"`
	Standings  []pokerdirector.Standing      `json:"standings"`
	PrizePool  payout.Result                 `json:"prize_pool"`
	LevelEndAt []int64                       `json:"level_end_at"`
}

func newTournamentView(state pokerdirector.TournamentState, now int64) tournamentView {
	return tournamentView{
		Tournament: state,
		Standings:  state.Standings(),
		PrizePool:  state.PrizePool(),
		LevelEndAt: state.LevelEndAts(now),
	}
}

func (s *Server) createTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := readOptionalJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	var settings pokerdirector.TournamentSettings
	if req.Settings != nil {
		settings = *req.Settings
	} else {
		sr := blind.ScheduleRequest{
			PlayerCount:  s.playerCount,
			DurationMins: s.durationMins,
			Format:       s.generation.TournamentFormat,
			Options:      s.generation,
		}
		if req.PlayerCount != 0 {
			sr.PlayerCount = req.PlayerCount
		}
		if req.DurationMins != 0 {
			sr.DurationMins = req.DurationMins
		}
		if err := sr.Validate(); err != nil {
			s.badRequest(w, r, err)
			return
		}
		settings = pokerdirector.NewSettingsFromSchedule("Tournament", blind.BuildSchedule(sr), sr.PlayerCount)
	}
	if req.Name != "" {
		settings.Name = req.Name
	}

	state, err := s.manager.CreateTournament(ownerID(r), settings, nil)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.logger.Info("tournament created", "tournament", state.ID, "owner", state.OwnerID)
	s.respond(w, r, http.StatusCreated, newTournamentView(state, nowUnix()))
}

func (s *Server) getTournament(w http.ResponseWriter, r *http.Request) {
	state, err := s.manager.GetTournament(ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, newTournamentView(state, nowUnix()))
}

func (s *Server) dispatchAction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := readBody(r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	action, err := pokerdirector.DecodeAction(body)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if action.Type == pokerdirector.ActionType_Tick {
		s.badRequest(w, r, errors.New("TICK is driven by the tournament clock"))
		return
	}

	state, err := s.manager.Dispatch(ownerID(r), chi.URLParam(r, "id"), action)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, newTournamentView(state, nowUnix()))
}

func (s *Server) saveTournament(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.manager.SaveTournament(r.Context(), ownerID(r), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, envelope{"id": id, "saved": true})
}

func (s *Server) loadTournament(w http.ResponseWriter, r *http.Request) {
	state, err := s.manager.LoadTournament(r.Context(), ownerID(r), chi.URLParam(r, "id"), nil)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, newTournamentView(state, nowUnix()))
}

func (s *Server) shareTournament(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.manager.GetTournament(ownerID(r), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	long := s.publicURL + "/tournaments/" + id
	token, err := s.shortener.Shorten(r.Context(), long)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusCreated, envelope{
		"token":     token,
		"short_url": s.publicURL + "/s/" + token,
		"url":       long,
	})
}

func (s *Server) resolveShortLink(w http.ResponseWriter, r *http.Request) {
	long, err := s.shortener.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, long, http.StatusFound)
}

type stackRequest struct {
	Denominations []int64  `json:"denominations"`
	Format        string   `json:"format"`
	DurationHours *float64 `json:"duration_hours"`
}

func (s *Server) calculateStack(w http.ResponseWriter, r *http.Request) {
	var req stackRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, blind.CalculateInitialStack(req.Denominations, req.Format, req.DurationHours))
}

func (s *Server) generateBlinds(w http.ResponseWriter, r *http.Request) {
	req := blind.ScheduleRequest{
		PlayerCount:  s.playerCount,
		DurationMins: s.durationMins,
		Format:       s.generation.TournamentFormat,
		Options:      s.generation,
	}
	if err := readOptionalJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.badRequest(w, r, err)
		return
	}

	schedule := blind.BuildSchedule(req)
	s.respond(w, r, http.StatusOK, envelope{
		"schedule":       schedule,
		"total_duration": blind.TotalDurationMins(schedule.Levels),
	})
}

func (s *Server) calculatePayouts(w http.ResponseWriter, r *http.Request) {
	var data payout.PrizePoolData
	if err := readJSON(w, r, &data); err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, payout.CalculatePrizePoolAndPayouts(data))
}

func (s *Server) suggestPayouts(w http.ResponseWriter, r *http.Request) {
	participants, err := strconv.Atoi(r.URL.Query().Get("participants"))
	if err != nil || participants < 0 {
		s.badRequest(w, r, errors.New("participants must be a non-negative integer"))
		return
	}
	s.respond(w, r, http.StatusOK, envelope{"places": payout.SuggestPayoutStructure(participants)})
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := writeJSON(w, status, data); err != nil {
		s.logger.Error("failed to write response", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}
