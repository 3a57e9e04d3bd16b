// Package clock abstrae la hora actual para que "hoy" sea reproducible en pruebas.
package clock

import (
	"sync"
	"time"
)

// Clock fuente de la hora actual.
type Clock interface {
	Now() time.Time
}

// System reloj del sistema en la zona indicada (nil = Local).
type System struct {
	Location *time.Location
}

// Now devuelve la hora actual en la zona configurada.
func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Fixed reloj manual para pruebas; Advance mueve la hora.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed crea un reloj detenido en t.
func NewFixed(t time.Time) *Fixed { return &Fixed{now: t} }

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance adelanta el reloj d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Set fija la hora.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// DayBounds devuelve [inicio, fin) del día calendario de t en loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = t.Location()
	}
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
