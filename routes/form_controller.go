package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/formbox/app"
	"github.com/mbolis/formbox/httpx"
	"github.com/mbolis/formbox/log"
	"github.com/mbolis/formbox/model"
)

// GetPrimaryForm serves the form shown on the public landing page.
func GetPrimaryForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.GetPrimary(r.Context())
		if err != nil {
			httpx.LogStoreError(w, "form.get_primary", err, "Primary form not found")
			return
		}
		render.JSON(w, r, form)
	}
}

// GetFormConfig is the legacy single-form endpoint: primary form, falling
// back to the default form, created on the fly if nothing exists.
func GetFormConfig(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.Initialize(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "form.get_config", err)
			return
		}
		render.JSON(w, r, form)
	}
}

// InitializeForm idempotently creates the built-in default form.
func InitializeForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.Initialize(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "form.initialize", err)
			return
		}
		render.JSON(w, r, form)
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Forms.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "form.list", err)
			return
		}
		render.JSON(w, r, forms)
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStoreError(w, "form.get", err, "Form not found")
			return
		}
		render.JSON(w, r, form)
	}
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.FormConfig{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "form.create.parse_body", "Title and fields are required")
			return
		}
		if form.Title == "" || form.Fields == nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "form.create.validate", "Title and fields are required")
			return
		}

		created, err := app.Forms.Create(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "form.create", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"message": "Form created successfully",
			"form":    created,
		})
	}
}

// SaveFormConfig is the legacy full-document upsert.
func SaveFormConfig(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.FormConfig{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil || form.ID == "" || form.Title == "" || form.Fields == nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "form.save.validate", "Invalid form configuration")
			return
		}

		saved, err := app.Forms.Save(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "form.save", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form configuration updated successfully",
			"config":  saved,
		})
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upd := model.FormUpdate{}
		err := render.DecodeJSON(r.Body, &upd)
		if err != nil || upd.Title == "" || upd.Fields == nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "form.update.validate", "Title and fields are required")
			return
		}

		form, err := app.Forms.Update(r.Context(), chi.URLParam(r, "id"), upd)
		if err != nil {
			httpx.LogStoreError(w, "form.update", err, "Form not found")
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form updated successfully",
			"form":    form,
		})
	}
}

func SetPrimaryForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := app.Forms.SetPrimary(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStoreError(w, "form.set_primary", err, "Form not found")
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form set as primary successfully",
			"form":    form,
		})
	}
}

func ArchiveForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			IsArchived *bool `json:"isArchived"`
		}{}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil || body.IsArchived == nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "form.archive.validate", "isArchived must be a boolean")
			return
		}
		// un-archiving goes through set-primary only
		if !*body.IsArchived {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "form.archive.direction", "To unarchive a form, set it as primary instead")
			return
		}

		form, err := app.Forms.Archive(r.Context(), chi.URLParam(r, "id"), true)
		if err != nil {
			httpx.LogStoreError(w, "form.archive", err, "Form not found")
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form archived successfully",
			"form":    form,
		})
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := app.Forms.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStoreError(w, "form.delete", err, "Form not found")
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form deleted successfully",
		})
	}
}
