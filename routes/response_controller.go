package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/formbox/app"
	"github.com/mbolis/formbox/httpx"
	"github.com/mbolis/formbox/log"
)

func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "response.list", err)
			return
		}
		render.JSON(w, r, responses)
	}
}

func GetResponseById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := app.Responses.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStoreError(w, "response.get", err, "Response not found")
			return
		}
		render.JSON(w, r, resp)
	}
}

// SubmitResponse is the public submission endpoint. The payload is only
// checked for presence of formId and data; field-level validation happens
// in the form UI before submitting.
func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			FormID string         `json:"formId"`
			Data   map[string]any `json:"data"`
			Email  *string        `json:"email"`
		}{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil || body.FormID == "" || body.Data == nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "response.submit.validate", "formId and data are required")
			return
		}

		resp, err := app.Responses.Add(r.Context(), body.FormID, body.Data, body.Email)
		if err != nil {
			httpx.LogInternalError(w, "response.submit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"message":  "Response submitted successfully",
			"response": resp,
		})
	}
}

func DeleteResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := app.Responses.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogInternalError(w, "response.delete", err)
			return
		}
		if !deleted {
			httpx.LogNotFound(w, "response.delete", "Response not found")
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Response deleted successfully",
		})
	}
}
