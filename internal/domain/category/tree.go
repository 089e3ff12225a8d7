// Package category contiene la lógica pura del árbol de categorías:
// materialización lista plana → bosque y planificación de la propagación de estado.
package category

import "github.com/jhoicas/categorias-api/internal/domain/entity"

// Node categoría con sus subcategorías ya enlazadas.
type Node struct {
	Category      *entity.Category
	Subcategories []*Node
}

// BuildTree convierte una lista plana (en cualquier orden) en un bosque de raíces.
// Primera pasada: índice id → nodo. Segunda pasada: cada nodo se cuelga de su padre
// o, si no tiene padre, se agrega como raíz. El orden de entrada se conserva.
//
// Un nodo cuyo padre no está en la lista se descarta (no aparece como hijo ni como raíz);
// Orphans permite recuperarlos. Un ciclo de padres nunca alcanza una raíz, así que sus
// miembros quedan fuera del resultado sin recorrerse indefinidamente.
func BuildTree(categories []*entity.Category) []*Node {
	index := make(map[string]*Node, len(categories))
	for _, c := range categories {
		index[c.ID] = &Node{Category: c, Subcategories: []*Node{}}
	}

	roots := make([]*Node, 0)
	for _, c := range categories {
		node := index[c.ID]
		if c.ParentID == "" {
			roots = append(roots, node)
			continue
		}
		if parent, ok := index[c.ParentID]; ok {
			parent.Subcategories = append(parent.Subcategories, node)
		}
	}
	return roots
}

// Flatten recorre el bosque en preorden y devuelve todas las categorías alcanzables.
func Flatten(roots []*Node) []*entity.Category {
	var out []*entity.Category
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n.Category)
			walk(n.Subcategories)
		}
	}
	walk(roots)
	return out
}

// Orphans devuelve las categorías que BuildTree deja fuera: padre inexistente o ciclo de padres.
func Orphans(categories []*entity.Category) []*entity.Category {
	reachable := make(map[string]struct{}, len(categories))
	for _, c := range Flatten(BuildTree(categories)) {
		reachable[c.ID] = struct{}{}
	}
	var out []*entity.Category
	for _, c := range categories {
		if _, ok := reachable[c.ID]; !ok {
			out = append(out, c)
		}
	}
	return out
}
