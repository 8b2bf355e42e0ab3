package recipe

import (
	"context"
	"sync"

	"grocery-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// TextGenerator is the text-generation service as seen by the generation
// pipeline.
type TextGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients []string, opts GenerateOptions) (*Draft, error)
}

// Store persists the saved-recipe sequence. Write failures are logged and
// never surfaced.
type Store interface {
	SaveRecipes(ctx context.Context, recipes []Recipe) error
}

// Service runs the recipe-generation pipeline and keeps the saved recipes.
// It holds the last generated draft for a subsequent explicit save. Requests
// are numbered so that a reply landing after a newer request started is
// discarded instead of overwriting the newer result.
type Service struct {
	mu      sync.Mutex
	gen     TextGenerator
	store   Store
	recipes []Recipe
	draft   *Draft
	seq     uint64
}

// NewService creates the generation pipeline over the given saved recipes.
func NewService(gen TextGenerator, store Store, recipes []Recipe) *Service {
	return &Service{
		gen:     gen,
		store:   store,
		recipes: append([]Recipe(nil), recipes...),
	}
}

// Reset replaces the saved recipes and clears the held draft, used after a
// profile switch.
func (s *Service) Reset(recipes []Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append([]Recipe(nil), recipes...)
	s.draft = nil
}

// Generate validates the selection and options, invokes the text-generation
// service, and holds the returned draft for display and a later save. An
// empty ingredient selection is rejected before any network call. On failure
// the previously displayed draft is cleared and the service message surfaced.
func (s *Service) Generate(ctx context.Context, ingredients []string, opts GenerateOptions) (*Draft, error) {
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("Please select at least one ingredient.")
	}
	opts = opts.Normalize()
	if field := opts.Validate(); field != "" {
		return nil, common.NewValidationError("Unrecognized value for option: " + field)
	}

	s.mu.Lock()
	s.seq++
	token := s.seq
	s.mu.Unlock()

	draft, err := s.gen.GenerateRecipe(ctx, ingredients, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		// A newer request started while this one was in flight; its reply
		// owns the draft slot.
		common.LogDebug("discarding stale generation reply",
			zap.Uint64("token", token),
			zap.Uint64("latest", s.seq),
		)
		if err != nil {
			return nil, err
		}
		return draft, nil
	}

	if err != nil {
		s.draft = nil
		return nil, err
	}

	s.draft = draft
	return draft, nil
}

// Draft returns the currently held draft, or nil.
func (s *Service) Draft() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil
	}
	d := *s.draft
	return &d
}

// Save assigns an id to the held draft and prepends it to the saved recipes.
func (s *Service) Save(ctx context.Context) (*Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, common.NewValidationError("There is no generated recipe to save.")
	}

	rec := Recipe{
		ID:           common.PrefixedID("recipe"),
		Name:         s.draft.Name,
		Description:  s.draft.Description,
		Ingredients:  s.draft.Ingredients,
		Instructions: s.draft.Instructions,
	}
	s.recipes = append([]Recipe{rec}, s.recipes...)
	s.persist(ctx)

	return &rec, nil
}

// List returns a copy of the saved recipes, newest first.
func (s *Service) List() []Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recipe(nil), s.recipes...)
}

// Get returns a saved recipe by id.
func (s *Service) Get(id string) (*Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.recipes {
		if rec.ID == id {
			r := rec
			return &r, true
		}
	}
	return nil, false
}

// Delete removes a saved recipe by id, a no-op when absent.
func (s *Service) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.recipes {
		if rec.ID == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.SaveRecipes(ctx, s.recipes); err != nil {
		common.LogWarn("failed to persist recipes", zap.Error(err))
	}
}
