package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/formbox/analytics"
	"github.com/mbolis/formbox/app"
	"github.com/mbolis/formbox/httpx"
)

// FormAnalytics aggregates the responses of one form into the summaries the
// admin dashboard charts.
func FormAnalytics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStoreError(w, "form.analytics.get", err, "Form not found")
			return
		}

		responses, err := app.Responses.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "form.analytics.responses", err)
			return
		}

		filtered := analytics.FilterByForm(responses, form.ID)
		render.JSON(w, r, map[string]any{
			"formId":     form.ID,
			"total":      len(filtered),
			"timeSeries": analytics.TimeSeries(filtered),
			"fields":     analytics.Summarize(form, filtered),
		})
	}
}
