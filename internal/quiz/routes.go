package quiz

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetQuiz)
	r.Post("/{id}/submit", h.SubmitQuiz)
	r.Put("/{id}/draft", h.SaveDraft)
	r.Get("/{id}/result", h.GetResult)
	return r
}
