package access

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"erp-admin-api-server/internal/models"
)

// ListFilter holds the optional query parameters of the access list. Zero
// values impose no constraint; filters that are present compose conjunctively.
type ListFilter struct {
	EmpresaID  string
	SedeID     string
	Texto      string
	FechaDesde string // YYYY-MM-DD, inclusive from 00:00:00
	FechaHasta string // YYYY-MM-DD, inclusive through 23:59:59
	Estado     string // dentro | fuera | ""
}

// SortByFechaHoraDesc orders records most recent first. Listing always sorts
// before any filter is applied.
func SortByFechaHoraDesc(records []models.AccesoInstalacion) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FechaHora.After(records[j].FechaHora)
	})
}

// Apply sorts records by fechaHora descending and keeps only those matching
// every present filter. Returns an error on malformed filter values (bad date,
// non-numeric id, unknown estado).
func Apply(records []models.AccesoInstalacion, f ListFilter) ([]models.AccesoInstalacion, error) {
	empresaID, err := coerceIDFilter("empresaId", f.EmpresaID)
	if err != nil {
		return nil, err
	}
	sedeID, err := coerceIDFilter("sedeId", f.SedeID)
	if err != nil {
		return nil, err
	}

	desde, hasta, err := dateRange(f.FechaDesde, f.FechaHasta)
	if err != nil {
		return nil, err
	}

	estado := strings.TrimSpace(f.Estado)
	if estado != "" && estado != models.EstadoDentro && estado != models.EstadoFuera {
		return nil, fmt.Errorf("estado must be %q or %q", models.EstadoDentro, models.EstadoFuera)
	}

	texto := strings.ToLower(strings.TrimSpace(f.Texto))

	SortByFechaHoraDesc(records)

	out := make([]models.AccesoInstalacion, 0, len(records))
	for _, r := range records {
		if empresaID != nil && r.EmpresaID != *empresaID {
			continue
		}
		if sedeID != nil && r.SedeID != *sedeID {
			continue
		}
		if desde != nil && r.FechaHora.Before(*desde) {
			continue
		}
		if hasta != nil && r.FechaHora.After(*hasta) {
			continue
		}
		if estado != "" && r.Estado() != estado {
			continue
		}
		if texto != "" && !matchesTexto(r, texto) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// coerceIDFilter applies the repository-wide rule that id filters compare
// numerically on both sides, so "5" and 5 select the same records.
func coerceIDFilter(name, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be numeric, got %q", name, raw)
	}
	return &id, nil
}

func dateRange(desde, hasta string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := strings.TrimSpace(desde); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("fechaDesde must be YYYY-MM-DD, got %q", s)
		}
		from = &d
	}
	if s := strings.TrimSpace(hasta); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("fechaHasta must be YYYY-MM-DD, got %q", s)
		}
		end := d.Add(24*time.Hour - time.Second) // through 23:59:59
		to = &end
	}
	return from, to, nil
}

// matchesTexto searches a fixed field set, case-insensitive.
func matchesTexto(r models.AccesoInstalacion, texto string) bool {
	for _, field := range []string{
		r.NumeroDocumento,
		r.NombrePersona,
		r.NombreDestinoVisita,
		r.VehiculoNroPlaca,
		r.Observaciones,
	} {
		if strings.Contains(strings.ToLower(field), texto) {
			return true
		}
	}
	return false
}
