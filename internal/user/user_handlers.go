package user

import (
	"net/http"

	"exercise-tracker/internal/httpapi"

	"github.com/sirupsen/logrus"
)

type UserHandlers struct {
	Service *UserService
	Logger  logrus.FieldLogger
}

func NewUserHandlers(service *UserService, logger logrus.FieldLogger) *UserHandlers {
	return &UserHandlers{Service: service, Logger: logger}
}

type createUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

func (h *UserHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	form, err := httpapi.ReadForm(w, r)
	if err != nil {
		httpapi.WriteError(w, r, h.Logger, err)
		return
	}

	user, err := h.Service.CreateOrFetch(r.Context(), form.Value("username"))
	if err != nil {
		httpapi.WriteError(w, r, h.Logger, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, createUserResponse{Username: user.Username, ID: user.ID})
}

func (h *UserHandlers) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.FindAll(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, h.Logger, err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, users)
}
