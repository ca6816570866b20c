package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"monthcal/internal/calendar"
	"monthcal/internal/model"
)

const conflictMessage = "This event overlaps with another one."

// eventIDNamespace scopes the name-based event UUIDs.
var eventIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("monthcal:event"))

// eventIndex assigns each loaded event a stable ID so the page can refer
// to a selected event. IDs are name-based UUIDs over the event's position
// and fields, so they survive restarts with the same input file.
type eventIndex struct {
	ids    []uuid.UUID
	byID   map[uuid.UUID]int
	byDate map[string][]int
}

func newEventIndex(events []model.Event) *eventIndex {
	idx := &eventIndex{
		ids:    make([]uuid.UUID, len(events)),
		byID:   make(map[uuid.UUID]int, len(events)),
		byDate: make(map[string][]int),
	}
	for i, ev := range events {
		name := fmt.Sprintf("%d\x00%s\x00%s\x00%s\x00%s", i, ev.Title, ev.Date, ev.Time, ev.Duration)
		id := uuid.NewSHA1(eventIDNamespace, []byte(name))
		idx.ids[i] = id
		idx.byID[id] = i
		idx.byDate[ev.Date] = append(idx.byDate[ev.Date], i)
	}
	return idx
}

// dayIDs returns the IDs of the events on date in source order, which is
// also the order calendar.ResolveDay lists them in.
func (x *eventIndex) dayIDs(date string) []uuid.UUID {
	positions := x.byDate[date]
	out := make([]uuid.UUID, len(positions))
	for i, p := range positions {
		out[i] = x.ids[p]
	}
	return out
}

type eventDTO struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Date     string         `json:"date"`
	Time     string         `json:"time"`
	Duration string         `json:"duration"`
	Index    int            `json:"index"`
	Conflict bool           `json:"conflict"`
	Icon     string         `json:"icon"`
	Color    calendar.Color `json:"color"`
	Tooltip  string         `json:"tooltip"`
}

type eventDetailDTO struct {
	eventDTO
	ConflictMessage string `json:"conflict_message,omitempty"`
}

type cellDTO struct {
	Date           string     `json:"date"`
	Day            int        `json:"day"`
	IsCurrentMonth bool       `json:"is_current_month"`
	IsToday        bool       `json:"is_today"`
	Events         []eventDTO `json:"events"`
}

type monthResponse struct {
	Month    string    `json:"month"`
	Title    string    `json:"title"`
	Prev     string    `json:"prev"`
	Next     string    `json:"next"`
	Today    string    `json:"today"`
	Weekdays []string  `json:"weekdays"`
	Cells    []cellDTO `json:"cells"`
}

type dayResponse struct {
	Date   string     `json:"date"`
	Events []eventDTO `json:"events"`
}

func toEventDTO(id uuid.UUID, ev model.AnnotatedEvent) eventDTO {
	d := calendar.Decorate(ev)
	return eventDTO{
		ID:       id.String(),
		Title:    ev.Title,
		Date:     ev.Date,
		Time:     ev.Time,
		Duration: ev.Duration,
		Index:    ev.Index,
		Conflict: ev.Conflict,
		Icon:     d.Icon,
		Color:    d.Color,
		Tooltip:  d.Tooltip,
	}
}

func (s *Server) dayDTOs(date string, resolved []model.AnnotatedEvent) []eventDTO {
	ids := s.index.dayIDs(date)
	out := make([]eventDTO, 0, len(resolved))
	for i, ev := range resolved {
		out = append(out, toEventDTO(ids[i], ev))
	}
	return out
}

func (s *Server) monthResponse(month calendar.Month) monthResponse {
	today := s.clock.Now()
	cells := calendar.BuildMonth(month.First(), today, s.events)

	out := monthResponse{
		Month:    month.Key(),
		Title:    month.String(),
		Prev:     month.Prev().Key(),
		Next:     month.Next().Key(),
		Today:    today.Format("2006-01-02"),
		Weekdays: calendar.WeekdayLabels[:],
		Cells:    make([]cellDTO, 0, len(cells)),
	}
	for _, c := range cells {
		date := c.Date.Format("2006-01-02")
		out.Cells = append(out.Cells, cellDTO{
			Date:           date,
			Day:            c.Date.Day(),
			IsCurrentMonth: c.IsCurrentMonth,
			IsToday:        c.IsToday,
			Events:         s.dayDTOs(date, c.Events),
		})
	}
	return out
}

// handleCurrentMonth lays out the month containing "now".
//
// GET /api/months/current
func (s *Server) handleCurrentMonth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.monthResponse(calendar.MonthOf(s.clock.Now())))
}

// handleMonth lays out an explicit month.
//
// GET /api/months/{year}/{month}
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, _ := strconv.Atoi(vars["year"])
	m, _ := strconv.Atoi(vars["month"])
	if m < 1 || m > 12 {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}
	writeJSON(w, http.StatusOK, s.monthResponse(calendar.Month{Year: year, Month: time.Month(m)}))
}

// handleDay resolves one date.
//
// GET /api/days/{date}   (date = YYYY-MM-DD)
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	resolved := calendar.ResolveDay(day, s.events)
	writeJSON(w, http.StatusOK, dayResponse{Date: date, Events: s.dayDTOs(date, resolved)})
}

// handleEvents lists every loaded event with its ID, in source order.
// Conflict flags come from resolving each event's own day.
//
// GET /api/events
func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	out := make([]eventDTO, 0, len(s.events))
	for i := range s.events {
		out = append(out, s.detail(i).eventDTO)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleEvent returns a single event for the detail dialog.
//
// GET /api/events/{id}
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	pos, ok := s.index.byID[id]
	if !ok {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, s.detail(pos))
}

// detail resolves the day of the event at source position pos and picks
// that event out of it. An event whose date cannot be parsed is reported
// as its own single-event day.
func (s *Server) detail(pos int) eventDetailDTO {
	ev := s.events[pos]
	id := s.index.ids[pos]

	annotated := model.AnnotatedEvent{Event: ev}
	if day, err := time.ParseInLocation("2006-01-02", ev.Date, time.Local); err == nil {
		resolved := calendar.ResolveDay(day, s.events)
		for i, other := range s.index.byDate[ev.Date] {
			if other == pos && i < len(resolved) {
				annotated = resolved[i]
				break
			}
		}
	}

	out := eventDetailDTO{eventDTO: toEventDTO(id, annotated)}
	if annotated.Conflict {
		out.ConflictMessage = conflictMessage
	}
	return out
}
