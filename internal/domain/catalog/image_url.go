package catalog

import "regexp"

// shareLinkPattern enlace compartido con identificador de archivo: .../d/<id>/...
var shareLinkPattern = regexp.MustCompile(`/d/([A-Za-z0-9_-]{10,})`)

// directViewURL forma canónica de acceso directo; no contiene "/d/", así que es un punto fijo.
const directViewURL = "https://drive.google.com/uc?export=view&id="

// NormalizeImageURL convierte un enlace compartido en el enlace de visualización directa.
// Si no coincide con el patrón devuelve la URL sin cambios. Nunca falla y es idempotente.
func NormalizeImageURL(raw string) string {
	m := shareLinkPattern.FindStringSubmatch(raw)
	if len(m) < 2 {
		return raw
	}
	return directViewURL + m[1]
}
