// Package console es una vista de terminal: una línea por evento de UI.
// Cumple el mismo contrato que tendría una vista de widgets.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"house-catalog/internal/domain/houses"
	"house-catalog/internal/presenter"
)

// Handler es el lado del presenter que consume la vista.
type Handler interface {
	Handle(ctx context.Context, in presenter.Intent)
	Refresh()
}

type View struct {
	in  io.Reader
	out io.Writer

	filter   string
	rows     []presenter.Row
	selected int // índice en rows, -1 = nada

	form         presenter.Form
	kinds        []houses.Kind
	floorEnabled bool
	armed        map[presenter.Button]bool
	status       string
}

var _ presenter.View = (*View)(nil)

func New(in io.Reader, out io.Writer) *View {
	return &View{
		in:       in,
		out:      out,
		selected: -1,
		armed:    map[presenter.Button]bool{},
	}
}

// -------------------------
// presenter.View
// -------------------------

func (v *View) FilterText() string { return v.filter }

func (v *View) SetRows(rows []presenter.Row) {
	v.rows = rows
	v.selected = -1
}

func (v *View) Selected() (presenter.Row, bool) {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return presenter.Row{}, false
	}
	return v.rows[v.selected], true
}

func (v *View) Form() presenter.Form     { return v.form }
func (v *View) SetForm(f presenter.Form) { v.form = f }
func (v *View) SetKinds(k []houses.Kind) { v.kinds = k }
func (v *View) SetFloorEnabled(on bool)  { v.floorEnabled = on }
func (v *View) ShowMessage(msg string)   { v.status = msg }
func (v *View) SetArmed(b presenter.Button, armed bool) {
	v.armed[b] = armed
}

// -------------------------
// Event pump
// -------------------------

// Run lee comandos hasta "salir", EOF o cancelación del contexto.
func (v *View) Run(ctx context.Context, h Handler) error {
	v.render()

	sc := bufio.NewScanner(v.in)
	for {
		v.prompt()
		if !sc.Scan() {
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		cmd, arg := splitCommand(sc.Text())
		if cmd == "salir" {
			return nil
		}

		in, ok := v.apply(cmd, arg)
		h.Refresh()
		if ok {
			h.Handle(ctx, in)
			v.render()
		}
	}
}

// apply actualiza el estado local y devuelve el intent a emitir, si hay.
func (v *View) apply(cmd, arg string) (presenter.Intent, bool) {
	switch cmd {
	case "":
		return 0, false
	case "filtro":
		v.filter = arg
		return presenter.Filter, true
	case "sel":
		v.selected = -1
		if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil && n >= 1 && n <= len(v.rows) {
			v.selected = n - 1
		}
		return presenter.Select, true
	case "crear":
		return v.press(presenter.CreateButton, presenter.Create)
	case "modificar":
		return v.press(presenter.UpdateButton, presenter.Update)
	case "borrar":
		return v.press(presenter.DeleteButton, presenter.Delete)
	case "guardar":
		return v.press(presenter.SaveButton, presenter.Save)
	case "calle":
		v.form.Street = arg
	case "numero", "número":
		v.form.StreetNumber = arg
	case "cp":
		v.form.PostalCode = arg
	case "superficie":
		v.form.Surface = arg
	case "banos", "baños":
		v.form.Bathrooms = arg
	case "habitaciones":
		v.form.Rooms = arg
	case "piso":
		if !v.floorEnabled {
			v.println("Piso deshabilitado para este tipo")
			return 0, false
		}
		v.form.StreetFloor = arg
	case "tipo":
		v.form.KindID = v.kindID(arg)
	case "lista":
		v.render()
	case "ayuda":
		v.help()
	default:
		v.println("Comando desconocido: " + cmd + " (ayuda)")
	}
	return 0, false
}

func (v *View) press(b presenter.Button, in presenter.Intent) (presenter.Intent, bool) {
	if !v.armed[b] {
		v.println("Botón " + b.String() + " deshabilitado")
		return 0, false
	}
	return in, true
}

// kindID acepta el id o el nombre del tipo; 0 si no existe.
func (v *View) kindID(arg string) int64 {
	arg = strings.TrimSpace(arg)
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id
	}
	slug := houses.Slug(arg)
	for _, k := range v.kinds {
		if houses.Slug(k.Name) == slug {
			return k.ID
		}
	}
	return 0
}

// splitCommand separa la primera palabra; el resto queda tal cual
// (sin recortar espacios: los campos llegan verbatim al Service).
func splitCommand(line string) (string, string) {
	line = strings.TrimRight(line, "\r")
	trimmed := strings.TrimLeft(line, " \t")
	cmd, arg, _ := strings.Cut(trimmed, " ")
	return strings.ToLower(cmd), arg
}

// -------------------------
// Render
// -------------------------

func (v *View) render() {
	v.println("")
	v.println("Id: " + v.filter)
	if len(v.rows) == 0 {
		v.println("  (sin elementos)")
	}
	for i, r := range v.rows {
		mark := " "
		if i == v.selected {
			mark = ">"
		}
		v.println(fmt.Sprintf("%s %d) %s", mark, i+1, r.Text))
	}

	f := v.form
	piso := f.StreetFloor
	if !v.floorEnabled {
		piso = "-"
	}
	v.println(fmt.Sprintf("Id: %s | Calle: %s | Número: %s | CP: %s | Superfice: %s | Baños: %s | Habitaciones: %s | Tipo: %s | Piso: %s",
		f.ID, f.Street, f.StreetNumber, f.PostalCode, f.Surface, f.Bathrooms, f.Rooms, v.kindName(f.KindID), piso))

	buttons := make([]string, 0, 4)
	for _, b := range []presenter.Button{presenter.CreateButton, presenter.UpdateButton, presenter.DeleteButton, presenter.SaveButton} {
		if v.armed[b] {
			buttons = append(buttons, "["+b.String()+"]")
		}
	}
	v.println(strings.Join(buttons, " "))
	if v.status != "" {
		v.println(v.status)
	}
}

func (v *View) kindName(id int64) string {
	for _, k := range v.kinds {
		if k.ID == id {
			return k.Name
		}
	}
	return ""
}

func (v *View) help() {
	v.println("Comandos: filtro <id> | sel <n> | crear | guardar | modificar | borrar | lista | salir")
	v.println("Campos:   calle | numero | cp | superficie | banos | habitaciones | piso <valor>")
	tipos := make([]string, 0, len(v.kinds))
	for _, k := range v.kinds {
		tipos = append(tipos, fmt.Sprintf("%d=%s", k.ID, k.Name))
	}
	v.println("Tipos:    tipo <id|nombre> (" + strings.Join(tipos, ", ") + ")")
}

func (v *View) prompt() {
	_, _ = fmt.Fprint(v.out, "> ")
}

func (v *View) println(s string) {
	_, _ = fmt.Fprintln(v.out, s)
}
