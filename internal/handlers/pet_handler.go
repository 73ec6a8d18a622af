package handlers

import (
	"errors"
	"net/http"

	"typepet/internal/service"
)

// PetHandler handles pet HTTP requests
type PetHandler struct {
	petService *service.PetService
}

// NewPetHandler creates a new pet handler
func NewPetHandler(petService *service.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

// GetPet returns the current pet state
func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	state, err := h.petService.LoadPetState(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to load pet state", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// FeedWord applies one typed word to the pet
func (h *PetHandler) FeedWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct bool `json:"correct"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	state, err := h.petService.FeedWord(r.Context(), req.Correct)
	if err != nil {
		respondServiceError(w, "Failed to feed pet", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// UpdateHappiness applies a happiness delta
func (h *PetHandler) UpdateHappiness(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int `json:"delta"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	level, err := h.petService.UpdateHappiness(r.Context(), req.Delta)
	if err != nil {
		respondServiceError(w, "Failed to update happiness", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"happiness_level": level})
}

// CheckEvolution reports whether the pet can evolve
func (h *PetHandler) CheckEvolution(w http.ResponseWriter, r *http.Request) {
	check, err := h.petService.CheckEvolutionTrigger(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to check evolution", err)
		return
	}
	respondJSON(w, http.StatusOK, check)
}

// Evolve advances the pet to its next form
func (h *PetHandler) Evolve(w http.ResponseWriter, r *http.Request) {
	form, err := h.petService.EvolveToNextForm(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			respondWithError(w, http.StatusConflict, err.Error(), "", nil)
			return
		}
		respondServiceError(w, "Failed to evolve pet", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"evolution_form": form.String()})
}

// Rename gives the pet a new name
func (h *PetHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.petService.Rename(r.Context(), req.Name); err != nil {
		respondServiceError(w, "Failed to rename pet", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}

// Reset hatches a fresh egg, discarding all pet progress
func (h *PetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.petService.Reset(r.Context()); err != nil {
		respondServiceError(w, "Failed to reset pet", err)
		return
	}

	state, err := h.petService.LoadPetState(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to load pet state", err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}
