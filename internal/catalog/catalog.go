// Package catalog manages the climb collections: a read-only built-in set of
// real-world and virtual climbs, and a separate user-defined set. The two are
// merged only when reading, so no filter or delete can touch the built-ins.
package catalog

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"climb-performance-lab/internal/models"
)

// builtins is the static climb database loaded at startup.
var builtins = []models.Climb{
	{ID: "alpe_huez", Name: "Alpe d'Huez", Region: "Alpen", Country: "FR", Flag: "🇫🇷", DistanceKm: 13.8, ElevationM: 1135, AvgGrade: 8.1, Type: models.ClimbReal},
	{ID: "ventoux", Name: "Mont Ventoux (Bédoin)", Region: "Provence", Country: "FR", Flag: "🇫🇷", DistanceKm: 21.0, ElevationM: 1610, AvgGrade: 7.5, Type: models.ClimbReal},
	{ID: "stelvio", Name: "Passo dello Stelvio", Region: "Dolomieten", Country: "IT", Flag: "🇮🇹", DistanceKm: 24.3, ElevationM: 1808, AvgGrade: 7.4, Type: models.ClimbReal},
	{ID: "z_adz", Name: "Alpe du Zwift", Region: "Watopia", Country: "Zwift", Flag: "🟧", DistanceKm: 12.2, ElevationM: 1036, AvgGrade: 8.5, Type: models.ClimbVirtual},
	{ID: "z_epic_kom", Name: "Epic KOM", Region: "Watopia", Country: "Zwift", Flag: "🟧", DistanceKm: 9.4, ElevationM: 540, AvgGrade: 5.9, Type: models.ClimbVirtual},
	{ID: "z_ven_top", Name: "Ven-Top", Region: "France", Country: "Zwift", Flag: "🟧", DistanceKm: 19.0, ElevationM: 1534, AvgGrade: 8.0, Type: models.ClimbVirtual},
}

// ProfileGenerator supplies elevation profiles for newly created climbs.
type ProfileGenerator interface {
	Generate(distanceKm, elevationGainM float64) []models.Segment
}

// Catalog holds both climb collections and tracks the active selection.
type Catalog struct {
	mu       sync.RWMutex
	user     []models.Climb
	activeID string
	gen      ProfileGenerator
}

// New creates a catalog with the built-in climbs and the first built-in
// active.
func New(gen ProfileGenerator) *Catalog {
	return &Catalog{activeID: builtins[0].ID, gen: gen}
}

// All returns the merged view: built-ins first, then user climbs.
func (c *Catalog) All() []models.Climb {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Climb, 0, len(builtins)+len(c.user))
	out = append(out, builtins...)
	out = append(out, c.user...)
	return out
}

// UserClimbs returns only the user-defined climbs, for persistence.
func (c *Catalog) UserClimbs() []models.Climb {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Climb, len(c.user))
	copy(out, c.user)
	return out
}

// SetUserClimbs replaces the user-defined set, used when loading persisted
// state. Built-ins are untouched; a loaded id colliding with a built-in is
// dropped.
func (c *Catalog) SetUserClimbs(climbs []models.Climb) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = c.user[:0]
	for _, climb := range climbs {
		if isBuiltin(climb.ID) {
			continue
		}
		climb.Type = models.ClimbCustom
		c.user = append(c.user, climb)
	}
}

// Get finds a climb by id across both collections.
func (c *Catalog) Get(id string) (models.Climb, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookup(id)
}

func (c *Catalog) lookup(id string) (models.Climb, bool) {
	for _, b := range builtins {
		if b.ID == id {
			return b, true
		}
	}
	for _, u := range c.user {
		if u.ID == id {
			return u, true
		}
	}
	return models.Climb{}, false
}

// Create validates and adds a user-defined climb, generating and persisting
// its profile, and makes it the active climb. Missing name, non-positive
// distance, or negative elevation make the call a no-op returning false.
func (c *Catalog) Create(name, country, flag string, distanceKm, elevationM float64) (models.Climb, bool) {
	if strings.TrimSpace(name) == "" || distanceKm <= 0 || elevationM < 0 {
		return models.Climb{}, false
	}

	climb := models.Climb{
		ID:         fmt.Sprintf("custom_%s", uuid.NewString()[:8]),
		Name:       strings.TrimSpace(name),
		Region:     "Custom",
		Country:    country,
		Flag:       flag,
		DistanceKm: distanceKm,
		ElevationM: elevationM,
		AvgGrade:   round1((elevationM / (distanceKm * 1000)) * 100),
		Type:       models.ClimbCustom,
		Profile:    c.gen.Generate(distanceKm, elevationM),
	}

	c.mu.Lock()
	c.user = append(c.user, climb)
	c.activeID = climb.ID
	c.mu.Unlock()
	return climb, true
}

// Delete removes a user-defined climb. Built-ins cannot be deleted. If the
// deleted climb was active, selection falls back to the first remaining climb
// in the merged view.
func (c *Catalog) Delete(id string) bool {
	if isBuiltin(id) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	found := false
	for i, u := range c.user {
		if u.ID == id {
			c.user = append(c.user[:i], c.user[i+1:]...)
			found = true
			break
		}
	}
	if found && c.activeID == id {
		c.activeID = builtins[0].ID
	}
	return found
}

// Select makes the given climb active. Unknown ids are rejected.
func (c *Catalog) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lookup(id); !ok {
		return false
	}
	c.activeID = id
	return true
}

// Active returns the currently selected climb. The selection is always
// valid: deletion falls back rather than leaving a dangling id.
func (c *Catalog) Active() models.Climb {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if climb, ok := c.lookup(c.activeID); ok {
		return climb
	}
	return builtins[0]
}

// ProfileFor returns the climb's elevation profile: the persisted one for
// user climbs, a freshly generated one for catalog entries.
func (c *Catalog) ProfileFor(id string) ([]models.Segment, bool) {
	climb, ok := c.Get(id)
	if !ok {
		return nil, false
	}
	if len(climb.Profile) > 0 {
		return climb.Profile, true
	}
	return c.gen.Generate(climb.DistanceKm, climb.ElevationM), true
}

// Filter narrows the merged view by type, country, region, and a name
// substring. Empty or "All" values match everything.
type Filter struct {
	Type    string
	Country string
	Region  string
	Search  string
}

// Filtered applies a filter to the merged view.
func (c *Catalog) Filtered(f Filter) []models.Climb {
	var out []models.Climb
	for _, climb := range c.All() {
		if !matches(f.Type, string(climb.Type)) {
			continue
		}
		if !matches(f.Country, climb.Country) {
			continue
		}
		if !matches(f.Region, climb.Region) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(climb.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, climb)
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || want == "All" || want == got
}

func isBuiltin(id string) bool {
	for _, b := range builtins {
		if b.ID == id {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
