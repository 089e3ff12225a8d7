package entity

import (
	"time"

	"golang.org/x/text/cases"
)

// Estados válidos de Category.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Category representa una categoría jerárquica. ParentID vacío = raíz.
type Category struct {
	ID        string
	Name      string
	ParentID  string
	Status    string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// IsValidStatus informa si s es uno de los estados permitidos.
func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

// FoldName normaliza un nombre para comparaciones sin distinción de mayúsculas.
// Un Caser no se comparte entre goroutines, por eso se crea en cada llamada.
func FoldName(name string) string {
	return cases.Fold().String(name)
}
