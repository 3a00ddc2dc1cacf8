package presenter

// Intent es un comando del usuario. El pump los despacha de a uno.
type Intent int

const (
	Create Intent = iota + 1
	Update
	Delete
	Select
	Filter
	Save
)

func (i Intent) String() string {
	switch i {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Select:
		return "select"
	case Filter:
		return "filter"
	case Save:
		return "save"
	default:
		return "unknown"
	}
}

// Button identifica los botones que el presenter arma/desarma.
type Button int

const (
	CreateButton Button = iota
	UpdateButton
	DeleteButton
	SaveButton
)

func (b Button) String() string {
	switch b {
	case CreateButton:
		return "Crear"
	case UpdateButton:
		return "Modificar"
	case DeleteButton:
		return "Borrar"
	case SaveButton:
		return "Guardar"
	default:
		return "?"
	}
}
