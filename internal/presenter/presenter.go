package presenter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"house-catalog/internal/domain/houses"
	"house-catalog/internal/platform/logger"
)

var (
	ErrNoSelection = errors.New("no hay elemento seleccionado")
	ErrRowNotFound = errors.New("elemento no encontrado")
)

// queueSize alcanza de sobra: cada intent encola a lo sumo dos más.
const queueSize = 32

// Presenter traduce intents a llamadas al Service y maneja la vista.
// Corre en un solo hilo: Handle procesa el intent y todo lo que éste
// encole antes de volver.
type Presenter struct {
	svc  Service
	view View
	log  logger.Logger

	queue chan Intent
	armed map[Button]bool
}

func New(svc Service, view View, log logger.Logger) *Presenter {
	if log == nil {
		log = logger.Nop()
	}
	return &Presenter{
		svc:   svc,
		view:  view,
		log:   log,
		queue: make(chan Intent, queueSize),
		armed: map[Button]bool{},
	}
}

// Start carga los tipos en la vista, fija el estado inicial de los botones
// y dispara el primer Filter.
func (p *Presenter) Start(ctx context.Context) {
	p.view.SetKinds(p.svc.Kinds())
	p.arm(CreateButton, true)
	p.arm(UpdateButton, false)
	p.arm(DeleteButton, false)
	p.arm(SaveButton, false)
	p.Handle(ctx, Filter)
}

// Handle encola el intent y drena la cola en orden. Con el contexto
// cancelado los intents pendientes se descartan (quedan en el log).
func (p *Presenter) Handle(ctx context.Context, in Intent) {
	p.schedule(in)
	for {
		select {
		case next := <-p.queue:
			if err := ctx.Err(); err != nil {
				p.log.Debug("intent descartado: contexto cancelado", map[string]any{"intent": next.String(), "err": err})
				continue
			}
			p.applyFloorRule()
			p.dispatch(ctx, next)
		default:
			return
		}
	}
}

// Refresh corre las reglas que la vista aplica en cada vuelta del pump,
// aunque el evento no sea un intent (p.ej. el usuario cambió el tipo).
func (p *Presenter) Refresh() {
	p.applyFloorRule()
}

func (p *Presenter) Armed(b Button) bool {
	return p.armed[b]
}

func (p *Presenter) schedule(in Intent) {
	select {
	case p.queue <- in:
	default:
		p.log.Warn("intent descartado: cola llena", map[string]any{"intent": in.String()})
	}
}

func (p *Presenter) dispatch(ctx context.Context, in Intent) {
	p.log.Debug("intent", map[string]any{"intent": in.String()})

	switch in {
	case Create:
		p.onCreate()
	case Update:
		p.onUpdate(ctx)
	case Delete:
		p.onDelete(ctx)
	case Select:
		p.onSelect(ctx)
	case Filter:
		p.onFilter(ctx)
	case Save:
		p.onSave(ctx)
	default:
		p.log.Warn("intent desconocido", map[string]any{"intent": int(in)})
	}
}

// applyFloorRule habilita el piso solo para tipos que lo requieren;
// para el resto lo limpia y lo deshabilita.
func (p *Presenter) applyFloorRule() {
	f := p.view.Form()
	if p.svc.RequiresFloor(f.KindID) {
		p.view.SetFloorEnabled(true)
		return
	}
	if f.StreetFloor != "" {
		f.StreetFloor = ""
		p.view.SetForm(f)
	}
	p.view.SetFloorEnabled(false)
}

func (p *Presenter) onCreate() {
	p.clearForm()
	p.arm(SaveButton, true)
	p.view.ShowMessage("Complete los campos")
	p.schedule(Filter)
}

func (p *Presenter) onSave(ctx context.Context) {
	if !p.armed[SaveButton] {
		p.log.Warn("guardar deshabilitado", map[string]any{"intent": Save.String()})
		return
	}

	f := p.view.Form()
	if _, err := p.svc.Create(ctx, f.Fields, f.KindID); err != nil {
		p.logFailure(Save, err)
		p.view.ShowMessage(err.Error())
		return
	}

	p.view.ShowMessage("Elemento nuevo guardado")
	p.clearForm()
	p.schedule(Filter)
	p.schedule(Select)
	p.arm(SaveButton, false)
}

func (p *Presenter) onUpdate(ctx context.Context) {
	row, ok := p.view.Selected()
	if !ok {
		p.log.Warn(ErrNoSelection.Error(), map[string]any{"intent": Update.String()})
		return
	}
	if _, err := p.resolve(ctx, row); err != nil {
		p.logFailure(Update, err)
		return
	}

	f := p.view.Form()
	if _, err := p.svc.Update(ctx, f.ID, f.Fields, f.KindID); err != nil {
		p.logFailure(Update, err)
		if errors.Is(err, houses.ErrPersistence) {
			p.view.ShowMessage(fmt.Sprintf("Error actualizando el elemento #%s", f.ID))
		} else {
			p.view.ShowMessage(err.Error())
		}
		return
	}

	p.view.ShowMessage(fmt.Sprintf("Elemento #%s actualizado", f.ID))
	p.clearForm()
	p.schedule(Filter)
	p.schedule(Select)
}

func (p *Presenter) onDelete(ctx context.Context) {
	p.arm(SaveButton, false)

	row, ok := p.view.Selected()
	if !ok {
		p.log.Warn(ErrNoSelection.Error(), map[string]any{"intent": Delete.String()})
		return
	}
	h, err := p.resolve(ctx, row)
	if err != nil {
		p.logFailure(Delete, err)
		return
	}

	if _, err := p.svc.Delete(ctx, h.ID); err != nil {
		p.logFailure(Delete, err)
		p.view.ShowMessage(fmt.Sprintf("Error eliminando el elemento #%d", h.ID))
		return
	}

	p.view.ShowMessage(fmt.Sprintf("Elemento #%d eliminado", h.ID))
	p.clearForm()
	p.schedule(Filter)
	p.schedule(Select)
}

// onSelect arma Guardar siempre; Modificar y Borrar solo con una fila resaltada.
func (p *Presenter) onSelect(ctx context.Context) {
	p.arm(SaveButton, true)

	row, ok := p.view.Selected()
	if !ok {
		p.arm(UpdateButton, false)
		p.arm(DeleteButton, false)
		return
	}

	h, err := p.resolve(ctx, row)
	if err != nil {
		p.logFailure(Select, err)
		return
	}

	p.view.SetForm(formFrom(h))
	p.arm(UpdateButton, true)
	p.arm(DeleteButton, true)
	p.view.ShowMessage(fmt.Sprintf("Elemento #%d seleccionado", h.ID))
}

func (p *Presenter) onFilter(ctx context.Context) {
	p.arm(SaveButton, false)

	items, err := p.svc.List(ctx)
	if err != nil {
		p.logFailure(Filter, err)
		p.view.ShowMessage(err.Error())
	} else {
		p.view.SetRows(FilterRows(items, p.view.FilterText()))
	}
	p.schedule(Select)
}

// resolve vuelve a leer la lista y encuentra la fila resaltada: por id si la
// vista lo trae, si no por el texto renderizado (ASCII sin distinguir mayúsculas).
// Si hay empates gana la primera.
func (p *Presenter) resolve(ctx context.Context, row Row) (houses.HouseWithKind, error) {
	items, err := p.svc.List(ctx)
	if err != nil {
		return houses.HouseWithKind{}, err
	}
	for _, h := range items {
		if row.ID != 0 {
			if h.ID == row.ID {
				return h, nil
			}
			continue
		}
		if equalFoldASCII(h.String(), row.Text) {
			return h, nil
		}
	}
	return houses.HouseWithKind{}, ErrRowNotFound
}

func (p *Presenter) arm(b Button, armed bool) {
	p.armed[b] = armed
	p.view.SetArmed(b, armed)
}

func (p *Presenter) clearForm() {
	p.view.SetForm(Form{})
}

func (p *Presenter) logFailure(in Intent, err error) {
	fields := map[string]any{"intent": in.String(), "err": err}
	if errors.Is(err, houses.ErrPersistence) {
		p.log.Error("falla del store", fields)
		return
	}
	p.log.Warn("intent rechazado", fields)
}

// FilterRows deja las filas cuyo id (en decimal) contiene el filtro.
// Un filtro vacío o solo con espacios muestra todo.
func FilterRows(items []houses.HouseWithKind, filter string) []Row {
	filter = strings.ToLower(filter)
	all := strings.TrimSpace(filter) == ""

	rows := make([]Row, 0, len(items))
	for _, h := range items {
		if all || strings.Contains(strconv.FormatInt(h.ID, 10), filter) {
			rows = append(rows, Row{ID: h.ID, Text: h.String()})
		}
	}
	return rows
}

func formFrom(h houses.HouseWithKind) Form {
	return Form{
		ID: strconv.FormatInt(h.ID, 10),
		Fields: houses.Fields{
			Street:       h.Street,
			StreetNumber: strconv.Itoa(int(h.StreetNumber)),
			StreetFloor:  h.StreetFloor,
			PostalCode:   h.PostalCode,
			Surface:      strconv.Itoa(int(h.SurfaceSquareMeters)),
			Bathrooms:    strconv.Itoa(int(h.Bathrooms)),
			Rooms:        strconv.Itoa(int(h.Rooms)),
		},
		KindID: h.KindID,
	}
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
