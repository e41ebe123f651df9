package ports

import "time"

// Clock provee "ahora" cuando el llamador no envía una fecha explícita.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj real.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock reloj detenido, útil en pruebas.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }
