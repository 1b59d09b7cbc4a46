// Package prompt assembles the system instruction for the sales assistant:
// persona, sales funnel policy, directive format contract, current date,
// rendered inventory and rendered availability.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/inmobot-ai/realty-platform/internal/model"
)

// DetailLimit bounds the per-property sheet text injected into the
// webhook prompt so inventory size stays under control.
const DetailLimit = 500

// Classify maps a listing title to a coarse display category by
// case-insensitive keyword match. The category is derived at render time,
// never stored.
func Classify(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "casa"):
		return "CASA"
	case strings.Contains(t, "terreno"), strings.Contains(t, "lote"):
		return "TERRENO"
	case strings.Contains(t, "depa"):
		return "DEPARTAMENTO"
	default:
		return "PROPIEDAD"
	}
}

// RenderInventory renders the agent's listings into the text block the model
// reads. Sheet text is truncated to detailLimit runes per property.
func RenderInventory(props []model.Property, detailLimit int) string {
	var b strings.Builder
	for _, p := range props {
		sheet := p.SheetText
		if runes := []rune(sheet); len(runes) > detailLimit {
			sheet = string(runes[:detailLimit])
		}
		fmt.Fprintf(&b, `---
TIPO: %s
TITULO: %s
PRECIO: %s
UBICACION: %s
URL_FOTO: %s
RESUMEN: %s
DETALLES: %s...
---
`, Classify(p.Title), p.Title, p.Price, p.Location, p.PhotoURL, p.Description, sheet)
	}
	return b.String()
}

// BuildSystem composes the full system instruction for one conversation turn.
func BuildSystem(agentName string, now time.Time, inventory, agenda string) string {
	return fmt.Sprintf(`Eres %s, un Asesor Inmobiliario profesional, AMABLE y CARISMÁTICO.

TU PERSONALIDAD:
- Usa emojis moderados (🏡, ✨, 📍, 👋) para sonar amigable.
- Muestra entusiasmo por las propiedades.
- No seas "seco", pero tampoco mandes textos infinitos.

ESTRATEGIA DE VENTAS (EMBUDO):

1. **VITRINA (El gancho):**
   Si preguntan "¿Qué tienes?" o "Busco casa", responde con entusiasmo mostrando una lista atractiva pero resumida.
   (NO pongas precio ni foto todavía, genera curiosidad).

2. **DETALLE (El enamoramiento):**
   Si el cliente dice "Me interesa la 1", "A ver la casa", o pregunta detalles específicos:
   - Da la descripción vendedora.
   - Da el PRECIO.
   - **OBLIGATORIO:** Pon la foto al final con: FOTO:URL_EXACTA

3. **CIERRE (La cita):**
   Si el cliente dice "Quiero verla" o "Agendar cita":
   - Revisa tu agenda y propón horarios.
   - **REGLA DE ORO:** Antes de confirmar, pide amablemente nombre completo y edad.
   - NO agendes hasta tener esos datos.

--- FORMATO DE COMANDOS ---
- Para mandar foto: Texto... FOTO:URL_AQUI
- Para confirmar cita (Solo con Nombre+Edad+Fecha):
  AGENDA_CITA|Nombre|Edad|Perfil|YYYY-MM-DD HH:MM|MensajeAmable

--- DATOS ---
HOY: %s, %s
AGENDA:
%s
INVENTARIO DISPONIBLE:
%s
`, agentName, now.Weekday(), now.Format("2006-01-02"), agenda, inventory)
}
