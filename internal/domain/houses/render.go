package houses

import "fmt"

// String arma la línea que muestra la lista.
// La rama con piso deja el "(" sin cerrar, igual que la versión en producción.
func (h HouseWithKind) String() string {
	address := fmt.Sprintf("%s %d", h.Street, h.StreetNumber)
	if h.KindRequiresFloor && h.StreetFloor != "" {
		address += fmt.Sprintf(" (piso %s", h.StreetFloor)
	}
	return fmt.Sprintf(
		"#%d: %s CP: %s. Con %d baño/s ,%d habitación/es. Tipo \"%s\" (%dm2)",
		h.ID,
		address,
		h.PostalCode,
		h.Bathrooms,
		h.Rooms,
		h.Kind,
		h.SurfaceSquareMeters,
	)
}
