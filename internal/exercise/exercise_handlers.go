package exercise

import (
	"net/http"

	"exercise-tracker/internal/httpapi"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ExerciseHandlers struct {
	Service *ExerciseService
	Logger  logrus.FieldLogger
}

func NewExerciseHandlers(service *ExerciseService, logger logrus.FieldLogger) *ExerciseHandlers {
	return &ExerciseHandlers{Service: service, Logger: logger}
}

func (h *ExerciseHandlers) CreateExercise(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["_id"]

	form, err := httpapi.ReadForm(w, r)
	if err != nil {
		httpapi.WriteError(w, r, h.Logger, err)
		return
	}

	in := NewExercise{
		Description: form.Value("description"),
		Date:        form.Value("date"),
	}
	if duration, ok := form.Get("duration"); ok {
		in.Duration = &duration
	}

	added, err := h.Service.AddExercise(r.Context(), userID, in)
	if err != nil {
		httpapi.WriteError(w, r, h.Logger, err)
		return
	}

	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": added.ID, "date": added.Date}).Debug("Exercise added")
	}
	httpapi.WriteJSON(w, http.StatusOK, added)
}

func (h *ExerciseHandlers) GetLogs(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["_id"]

	q, err := ParseLogQuery(r.URL.Query())
	if err != nil {
		httpapi.WriteError(w, r, h.Logger, err)
		return
	}

	log, err := h.Service.GetLog(r.Context(), userID, q)
	if err != nil {
		httpapi.WriteError(w, r, h.Logger, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, log)
}
