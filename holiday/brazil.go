/*
Package holiday provides the Brazilian holiday calendar used by the engine.

PURPOSE:
  Implements engine.HolidaySource for Brazil: national holidays (fixed dates
  plus the Easter-derived movable feasts) and the fixed-date state holidays
  of each federative unit (UF). This is the production collaborator behind
  the engine's workday / rest-day classification.

MOVABLE FEASTS:
  Carnival Monday/Tuesday, Good Friday, and Corpus Christi are computed from
  Easter Sunday via the anonymous Gregorian computus, so the calendar works
  for any projection year without data updates.

STATE HOLIDAYS:
  The per-UF tables carry the commonly observed fixed-date state holidays.
  Municipal holidays are out of scope: payroll rest-day rules key on state
  (estado_feriados), matching the configuration.

REGION VALIDATION:
  An unknown UF returns ErrUnknownState. The engine surfaces that as
  ErrInvalidRegion and aborts the projection; a typo in estado_feriados must
  reach the user, not silently produce a holiday-free year.

USAGE:
  br := holiday.NewBrazil()
  eng := engine.NewProjectionEngine(br)

SEE ALSO:
  - engine/calendar.go: the consuming classifier
*/
package holiday

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/verde/budget-engine/engine"
)

// ErrUnknownState is returned when the region code is not a Brazilian UF.
var ErrUnknownState = errors.New("unknown state code")

// =============================================================================
// BRAZIL CALENDAR
// =============================================================================

// Brazil is an engine.HolidaySource for Brazilian national and state
// holidays. Safe for concurrent use; computed years are cached.
type Brazil struct {
	mu    sync.RWMutex
	cache map[yearState]map[engine.Date]string
}

type yearState struct {
	Year  int
	State string
}

func NewBrazil() *Brazil {
	return &Brazil{cache: make(map[yearState]map[engine.Date]string)}
}

// HolidaysFor returns the national + state holiday set for the year.
func (b *Brazil) HolidaysFor(year int, region string) (map[engine.Date]string, error) {
	states, ok := stateHolidays[region]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, region)
	}

	key := yearState{Year: year, State: region}
	b.mu.RLock()
	cached, hit := b.cache[key]
	b.mu.RUnlock()
	if hit {
		return cached, nil
	}

	set := make(map[engine.Date]string)
	for _, h := range nationalHolidays(year) {
		set[h.date] = h.name
	}
	for _, f := range states {
		set[engine.Date{Year: year, Month: f.Month, Day: f.Day}] = f.Name
	}

	b.mu.Lock()
	b.cache[key] = set
	b.mu.Unlock()
	return set, nil
}

// =============================================================================
// NATIONAL HOLIDAYS
// =============================================================================

type holidayDate struct {
	date engine.Date
	name string
}

func fixed(year int, month time.Month, day int, name string) holidayDate {
	return holidayDate{date: engine.Date{Year: year, Month: month, Day: day}, name: name}
}

func nationalHolidays(year int) []holidayDate {
	easterDay := easter(year)

	hs := []holidayDate{
		fixed(year, time.January, 1, "Confraternização Universal"),
		easterOffset(easterDay, -48, "Carnaval"),
		easterOffset(easterDay, -47, "Carnaval"),
		easterOffset(easterDay, -2, "Sexta-feira Santa"),
		fixed(year, time.April, 21, "Tiradentes"),
		fixed(year, time.May, 1, "Dia do Trabalhador"),
		easterOffset(easterDay, 60, "Corpus Christi"),
		fixed(year, time.September, 7, "Independência do Brasil"),
		fixed(year, time.October, 12, "Nossa Senhora Aparecida"),
		fixed(year, time.November, 2, "Finados"),
		fixed(year, time.November, 15, "Proclamação da República"),
		fixed(year, time.December, 25, "Natal"),
	}
	// National holiday since Lei 14.759/2023; before that a state holiday in
	// several UFs (kept in their tables).
	if year >= 2024 {
		hs = append(hs, fixed(year, time.November, 20, "Dia Nacional de Zumbi e da Consciência Negra"))
	}
	return hs
}

func easterOffset(easterDay time.Time, days int, name string) holidayDate {
	d := easterDay.AddDate(0, 0, days)
	return holidayDate{
		date: engine.Date{Year: d.Year(), Month: d.Month(), Day: d.Day()},
		name: name,
	}
}

// easter returns Easter Sunday for the year (anonymous Gregorian computus).
func easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// STATE HOLIDAYS - Fixed dates per UF
// =============================================================================

type stateHoliday struct {
	Month time.Month
	Day   int
	Name  string
}

var stateHolidays = map[string][]stateHoliday{
	"AC": {
		{time.January, 23, "Dia do Evangélico"},
		{time.June, 15, "Aniversário do Acre"},
		{time.September, 5, "Dia da Amazônia"},
		{time.November, 17, "Assinatura do Tratado de Petrópolis"},
	},
	"AL": {
		{time.June, 24, "São João"},
		{time.June, 29, "São Pedro"},
		{time.September, 16, "Emancipação Política de Alagoas"},
	},
	"AP": {
		{time.March, 19, "São José"},
		{time.September, 13, "Criação do Território Federal"},
	},
	"AM": {
		{time.September, 5, "Elevação do Amazonas à Categoria de Província"},
		{time.December, 8, "Nossa Senhora da Conceição"},
	},
	"BA": {
		{time.July, 2, "Independência da Bahia"},
	},
	"CE": {
		{time.March, 19, "São José"},
		{time.March, 25, "Abolição da Escravidão no Ceará"},
	},
	"DF": {
		{time.April, 21, "Fundação de Brasília"},
		{time.November, 30, "Dia do Evangélico"},
	},
	"ES": {},
	"GO": {
		{time.July, 26, "Fundação da Cidade de Goiás"},
	},
	"MA": {
		{time.July, 28, "Adesão do Maranhão à Independência"},
	},
	"MT": {
		{time.November, 20, "Consciência Negra"},
	},
	"MS": {
		{time.October, 11, "Criação do Estado"},
	},
	"MG": {
		{time.April, 21, "Data Magna de Minas Gerais"},
	},
	"PA": {
		{time.August, 15, "Adesão do Grão-Pará à Independência"},
	},
	"PB": {
		{time.August, 5, "Fundação do Estado"},
	},
	"PR": {
		{time.December, 19, "Emancipação do Paraná"},
	},
	"PE": {
		{time.March, 6, "Revolução Pernambucana"},
	},
	"PI": {
		{time.October, 19, "Dia do Piauí"},
	},
	"RJ": {
		{time.April, 23, "São Jorge"},
		{time.November, 20, "Zumbi dos Palmares"},
	},
	"RN": {
		{time.October, 3, "Mártires de Cunhaú e Uruaçu"},
	},
	"RS": {
		{time.September, 20, "Revolução Farroupilha"},
	},
	"RO": {
		{time.January, 4, "Criação do Estado"},
		{time.June, 18, "Dia do Evangélico"},
	},
	"RR": {
		{time.October, 5, "Criação do Estado"},
	},
	"SC": {
		{time.August, 11, "Criação da Capitania de Santa Catarina"},
	},
	"SP": {
		{time.July, 9, "Revolução Constitucionalista"},
	},
	"SE": {
		{time.July, 8, "Emancipação Política de Sergipe"},
	},
	"TO": {
		{time.March, 18, "Autonomia do Estado"},
		{time.September, 8, "Nossa Senhora da Natividade"},
		{time.October, 5, "Criação do Estado"},
	},
}

// States returns the known UF codes.
func States() []string {
	out := make([]string, 0, len(stateHolidays))
	for uf := range stateHolidays {
		out = append(out, uf)
	}
	return out
}
