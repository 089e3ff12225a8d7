package category

import "github.com/jhoicas/categorias-api/internal/domain/entity"

// CascadeTargets calcula los ids a los que se aplica status al cambiar el estado de rootID.
// La raíz siempre se incluye (primer elemento). Reglas:
//   - inactive: toda la descendencia, sin importar su estado actual.
//   - active: de los hijos directos de la raíz solo entran los inactivos (un hijo directo ya
//     activo conserva intacto su subárbol); por debajo de ellos se desciende por toda la rama,
//     incluidos los nodos ya activos, para alcanzar a los inactivos más profundos.
//
// El orden es preorden (profundidad primero). Devuelve nil si rootID no está en la lista.
// Un conjunto de visitados protege frente a ciclos de padres.
func CascadeTargets(categories []*entity.Category, rootID, status string) []string {
	children := make(map[string][]*entity.Category, len(categories))
	found := false
	for _, c := range categories {
		if c.ID == rootID {
			found = true
		}
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}
	if !found {
		return nil
	}

	visited := map[string]struct{}{rootID: {}}
	targets := []string{rootID}

	var walk func(parentID string)
	walk = func(parentID string) {
		for _, child := range children[parentID] {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			if status == entity.StatusActive && parentID == rootID && child.Status != entity.StatusInactive {
				continue
			}
			visited[child.ID] = struct{}{}
			targets = append(targets, child.ID)
			walk(child.ID)
		}
	}
	walk(rootID)
	return targets
}
