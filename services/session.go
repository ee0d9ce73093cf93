package services

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Mode is the session's editing state.
type Mode int

const (
	// ModeViewing allows quantity changes only.
	ModeViewing Mode = iota
	// ModeEditing additionally allows price and catalog changes.
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

// CustomIDPrefix prefixes ids of services added by the user.
const CustomIDPrefix = "custom-"

// NewItem is the input for Session.AddItem.
type NewItem struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"gt=0"`
	Category    string  `validate:"required"`
	Unit        string
	Description string
	MaxQuantity *int `validate:"omitempty,gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// persistedState is the record written under the storage key. Quantities
// are not part of it; every session starts with none.
type persistedState struct {
	Catalog []ServiceItem      `json:"catalog"`
	Prices  map[string]float64 `json:"prices"`
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithIDGenerator replaces the random source used for new service ids.
func WithIDGenerator(gen func() string) SessionOption {
	return func(s *Session) { s.genID = gen }
}

// Session is the single mutable state container of a calculator session:
// the working catalog, price overrides, quantities and edit mode. All methods
// are safe for concurrent use; each mutation is applied atomically.
type Session struct {
	mu sync.Mutex

	defaults   *Catalog
	categories []Category
	known      map[string]int

	items      []ServiceItem
	prices     map[string]float64
	quantities map[string]int
	mode       Mode

	store StateStore
	key   string
	genID func() string
	log   zerolog.Logger
}

// NewSession creates a session over the shipped catalog and restores any
// catalog and price customisations persisted under key.
func NewSession(defaults *Catalog, store StateStore, key string, log zerolog.Logger, opts ...SessionOption) *Session {
	s := &Session{
		defaults:   defaults,
		categories: defaults.Categories(),
		known:      make(map[string]int),
		store:      store,
		key:        key,
		genID:      uuid.NewString,
		log:        log.With().Str("component", "session").Logger(),
	}
	for i, c := range s.categories {
		s.known[c.Key] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Load replaces the working catalog and prices with the persisted record.
// A missing, malformed or invalid record resets to catalog defaults; it
// reports whether persisted state was restored. Quantities always reset and
// the session returns to viewing mode.
func (s *Session) Load() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quantities = make(map[string]int)
	s.mode = ModeViewing

	state, err := s.readState()
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			s.log.Warn().Err(err).Msg("persisted state unusable, using catalog defaults")
		}
		s.items = s.defaults.Items()
		s.prices = s.defaults.DefaultPrices()
		return false
	}

	s.items = state.Catalog
	s.prices = make(map[string]float64, len(state.Catalog))
	for _, it := range state.Catalog {
		if p, ok := state.Prices[it.ID]; ok && p >= 0 && !math.IsNaN(p) && !math.IsInf(p, 0) {
			s.prices[it.ID] = p
		} else {
			s.prices[it.ID] = it.UnitPrice
		}
	}
	if unknown := unknownCategories(s.items, s.known); len(unknown) > 0 {
		s.log.Warn().Strs("categories", unknown).Msg("services reference unknown categories")
	}
	return true
}

func (s *Session) readState() (persistedState, error) {
	var state persistedState
	data, err := s.store.Load(s.key)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return state, err
		}
		return state, &PersistenceError{Op: "load", Key: s.key, Err: err}
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, &PersistenceError{Op: "decode", Key: s.key, Err: err}
	}
	if state.Catalog == nil {
		return state, &PersistenceError{Op: "decode", Key: s.key, Err: errors.New("record has no catalog")}
	}
	if _, err := NewCatalog(state.Catalog, s.categories); err != nil {
		return state, &PersistenceError{Op: "validate", Key: s.key, Err: err}
	}
	return state, nil
}

// Save writes the working catalog and prices under the storage key.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Session) save() error {
	data, err := json.Marshal(persistedState{Catalog: s.items, Prices: s.prices})
	if err != nil {
		return &PersistenceError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.store.Save(s.key, data); err != nil {
		return &PersistenceError{Op: "save", Key: s.key, Err: err}
	}
	return nil
}

// persist saves after a mutation. Failures are logged, never returned.
func (s *Session) persist() {
	if err := s.save(); err != nil {
		s.log.Warn().Err(err).Msg("persist session state")
	}
}

// Mode returns the current editing mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// BeginEdit enters editing mode. It is always permitted.
func (s *Session) BeginEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeEditing
}

// EndEdit persists pending edits and returns to viewing mode. The mode
// changes even when the write fails; the PersistenceError is returned so the
// caller can warn the user.
func (s *Session) EndEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeViewing
	return s.save()
}

// SetQuantity stores a quantity for an item. Negative values and values
// above the item's maximum are rejected and leave the prior quantity in
// place. Zero removes the entry.
func (s *Session) SetQuantity(id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return invalid("quantity", ErrUnknownItem, "unknown service %q", id)
	}
	item := s.items[i]
	if qty < 0 {
		return invalid("quantity", ErrNegativeQuantity, "quantity for %q must not be negative", item.Name)
	}
	if item.MaxQuantity != nil && qty > *item.MaxQuantity {
		return invalid("quantity", ErrQuantityAboveMax, "quantity for %q must be at most %d", item.Name, *item.MaxQuantity)
	}

	if qty == 0 {
		delete(s.quantities, id)
	} else {
		s.quantities[id] = qty
	}
	s.persist()
	return nil
}

// SetPrice overrides an item's unit price. Only allowed while editing.
func (s *Session) SetPrice(id string, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing {
		return invalid("price", ErrNotEditing, "prices can only be changed in edit mode")
	}
	if s.indexOf(id) < 0 {
		return invalid("price", ErrUnknownItem, "unknown service %q", id)
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return invalid("price", ErrNegativePrice, "price must be a non-negative number")
	}
	s.prices[id] = price
	s.persist()
	return nil
}

// AddItem appends a user-defined service to the working catalog and seeds
// its price. Only allowed while editing. The category is matched against
// known keys and labels; unmatched input is kept as a raw key.
func (s *Session) AddItem(in NewItem) (ServiceItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing {
		return ServiceItem{}, invalid("", ErrNotEditing, "services can only be added in edit mode")
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := validate.Struct(in); err != nil {
		return ServiceItem{}, newItemError(err)
	}

	category, ok := s.defaults.ResolveCategory(in.Category)
	if !ok {
		s.log.Warn().Str("category", category).Str("service", in.Name).Msg("service added with unknown category")
	}

	item := ServiceItem{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.Price,
		Unit:        in.Unit,
		Category:    category,
		MaxQuantity: in.MaxQuantity,
	}
	item = cloneItem(item)
	s.items = append(s.items, item)
	s.prices[item.ID] = item.UnitPrice
	s.persist()
	return cloneItem(item), nil
}

// DeleteItem removes a service from the working catalog along with its
// price override and quantity. Deleting an absent id is a no-op.
func (s *Session) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEditing {
		return invalid("", ErrNotEditing, "services can only be deleted in edit mode")
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	delete(s.prices, id)
	delete(s.quantities, id)
	s.persist()
	return nil
}

// ResetQuantities clears every quantity. Catalog and prices are untouched.
func (s *Session) ResetQuantities() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantities = make(map[string]int)
}

// Quantity returns the stored quantity for id, zero when unset.
func (s *Session) Quantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantities[id]
}

// Price returns the effective unit price for id.
func (s *Session) Price(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return 0, false
	}
	return EffectivePrice(s.items[i], s.prices), true
}

// Item returns a copy of the working catalog entry for id.
func (s *Session) Item(id string) (ServiceItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ServiceItem{}, false
	}
	return cloneItem(s.items[i]), true
}

// Totals recomputes the estimate from the current state.
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CalcTotals(s.items, s.categories, s.prices, s.quantities)
}

// SessionView is a consistent copy of the session for rendering and export.
type SessionView struct {
	Mode       Mode
	Items      []ServiceItem
	Categories []Category
	Prices     map[string]float64
	Quantities map[string]int
	Totals     Totals
}

// View returns a snapshot taken under a single lock, so the items, prices,
// quantities and totals in it always agree.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]ServiceItem, len(s.items))
	for i, it := range s.items {
		items[i] = cloneItem(it)
	}
	prices := make(map[string]float64, len(s.prices))
	for k, v := range s.prices {
		prices[k] = v
	}
	quantities := make(map[string]int, len(s.quantities))
	for k, v := range s.quantities {
		quantities[k] = v
	}
	categories := make([]Category, len(s.categories))
	copy(categories, s.categories)

	return SessionView{
		Mode:       s.mode,
		Items:      items,
		Categories: categories,
		Prices:     prices,
		Quantities: quantities,
		Totals:     CalcTotals(items, categories, prices, quantities),
	}
}

func (s *Session) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// newID draws ids until one is free. Random ids make collisions unlikely;
// the check makes them impossible.
func (s *Session) newID() string {
	for {
		id := CustomIDPrefix + s.genID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func newItemError(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("", ErrInvalidItem, "%v", err)
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Field() {
	case "Name":
		return invalid(field, ErrInvalidItem, "name is required")
	case "Price":
		return invalid(field, ErrInvalidItem, "price must be greater than zero")
	case "Category":
		return invalid(field, ErrInvalidItem, "category is required")
	case "MaxQuantity":
		return invalid(field, ErrInvalidItem, "max quantity must not be negative")
	}
	return invalid(field, ErrInvalidItem, "failed on %s", fe.Tag())
}
