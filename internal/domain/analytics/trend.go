// Package analytics agrupa ingresos en series temporales con corrección horaria.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity ancho de cada intervalo de la serie.
type Granularity string

const (
	GranularityHourly Granularity = "HOURLY"
	GranularityDaily  Granularity = "DAILY"
)

const (
	hourlyKeyLayout   = "2006-01-02 15:00:00"
	dailyKeyLayout    = "2006-01-02"
	hourlyLabelLayout = "15:04"
	dailyLabelLayout  = "02/01"
)

// DefaultWindow ventana usada cuando no se indica rango.
const DefaultWindow = 7 * 24 * time.Hour

// hourlyLimit ventanas menores a esto se agrupan por hora.
const hourlyLimit = 48 * time.Hour

// Window rango [Start, End] de la consulta.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow completa los extremos faltantes: End = now, Start = End - 7 días.
// Los extremos quedan siempre en UTC.
func ResolveWindow(start, end *time.Time, now time.Time) Window {
	w := Window{End: now.UTC()}
	if end != nil {
		w.End = end.UTC()
	}
	w.Start = w.End.Add(-DefaultWindow)
	if start != nil {
		w.Start = start.UTC()
	}
	return w
}

// Duration largo de la ventana.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

// Previous ventana inmediatamente anterior de igual duración.
func (w Window) Previous() Window {
	return Window{Start: w.Start.Add(-w.Duration()), End: w.Start}
}

// GranularityFor HOURLY si la ventana dura menos de 48h, DAILY en otro caso.
func GranularityFor(w Window) Granularity {
	if w.Duration() < hourlyLimit {
		return GranularityHourly
	}
	return GranularityDaily
}

// Truncate lleva t al inicio de su intervalo UTC. La zona del host no interviene.
func Truncate(t time.Time, g Granularity) time.Time {
	t = t.UTC()
	if g == GranularityHourly {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BucketKey clave de agrupación del intervalo que contiene t.
func BucketKey(t time.Time, g Granularity) string {
	if g == GranularityHourly {
		return Truncate(t, g).Format(hourlyKeyLayout)
	}
	return Truncate(t, g).Format(dailyKeyLayout)
}

// BucketLabel etiqueta corta para mostrar en el gráfico.
func BucketLabel(t time.Time, g Granularity) string {
	if g == GranularityHourly {
		return t.Format(hourlyLabelLayout)
	}
	return t.Format(dailyLabelLayout)
}

func step(g Granularity) time.Duration {
	if g == GranularityHourly {
		return time.Hour
	}
	return 24 * time.Hour
}

// Bucket intervalo esperado de la serie.
type Bucket struct {
	Key   string
	Label string
}

// ExpectedBuckets genera todos los intervalos desde el inicio truncado de la ventana hasta End inclusive.
// Los extremos de la ventana no se desplazan; sólo las ventas.
func ExpectedBuckets(w Window, g Granularity) []Bucket {
	var out []Bucket
	for cur := Truncate(w.Start, g); !cur.After(w.End); cur = cur.Add(step(g)) {
		out = append(out, Bucket{Key: BucketKey(cur, g), Label: BucketLabel(cur, g)})
	}
	return out
}

// Shift aplica el desplazamiento horario del negocio a un timestamp crudo.
func Shift(t time.Time, offsetHours int) time.Time {
	return t.UTC().Add(time.Duration(offsetHours) * time.Hour)
}

// Sample ingreso de una línea de venta confirmada con su timestamp crudo.
type Sample struct {
	At      time.Time
	Revenue decimal.Decimal
}

// Point punto de la serie.
type Point struct {
	Label   string
	Key     string
	Revenue decimal.Decimal
}

// Trend construye la serie completa: desplaza cada muestra antes de truncarla, suma por clave
// y rellena con cero los intervalos sin ventas. Muestras fuera de los intervalos esperados se descartan.
func Trend(w Window, offsetHours int, samples []Sample) (Granularity, []Point) {
	g := GranularityFor(w)
	sums := make(map[string]decimal.Decimal)
	for _, s := range samples {
		k := BucketKey(Shift(s.At, offsetHours), g)
		sums[k] = sums[k].Add(s.Revenue)
	}
	buckets := ExpectedBuckets(w, g)
	points := make([]Point, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, Point{Label: b.Label, Key: b.Key, Revenue: sums[b.Key]})
	}
	return g, points
}
