package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/categorias-api/internal/domain/category"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

func TestCascadeTargets_InactivoPropagaATodos(t *testing.T) {
	in := []*entity.Category{
		cat("A", "", entity.StatusActive),
		cat("B", "A", entity.StatusActive),
		cat("C", "B", entity.StatusInactive),
		cat("D", "A", entity.StatusActive),
		cat("Z", "", entity.StatusActive),
	}

	got := category.CascadeTargets(in, "A", entity.StatusInactive)
	assert.Equal(t, []string{"A", "B", "C", "D"}, got)
}

func TestCascadeTargets_ActivoSoloReactivaInactivos(t *testing.T) {
	in := []*entity.Category{
		cat("A", "", entity.StatusInactive),
		cat("B", "A", entity.StatusInactive),
		cat("C", "B", entity.StatusInactive),
		cat("D", "A", entity.StatusActive),
		cat("E", "D", entity.StatusInactive), // bajo un hijo directo ya activo: no se toca
	}

	got := category.CascadeTargets(in, "A", entity.StatusActive)
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestCascadeTargets_ActivoAlcanzaInactivosBajoNietoActivo(t *testing.T) {
	in := []*entity.Category{
		cat("A", "", entity.StatusInactive),
		cat("B", "A", entity.StatusInactive),
		cat("C", "B", entity.StatusActive),
		cat("D", "C", entity.StatusInactive),
	}

	got := category.CascadeTargets(in, "A", entity.StatusActive)
	assert.Equal(t, []string{"A", "B", "C", "D"}, got)
}

func TestCascadeTargets_EscenarioIdaYVuelta(t *testing.T) {
	in := []*entity.Category{
		cat("A", "", entity.StatusActive),
		cat("B", "A", entity.StatusActive),
		cat("C", "B", entity.StatusActive),
	}

	off := category.CascadeTargets(in, "A", entity.StatusInactive)
	assert.Equal(t, []string{"A", "B", "C"}, off)
	for _, c := range in {
		c.Status = entity.StatusInactive
	}

	on := category.CascadeTargets(in, "A", entity.StatusActive)
	assert.Equal(t, []string{"A", "B", "C"}, on)
}

func TestCascadeTargets_RaizInexistente(t *testing.T) {
	in := []*entity.Category{cat("A", "", "")}
	assert.Nil(t, category.CascadeTargets(in, "nope", entity.StatusInactive))
}

func TestCascadeTargets_CicloTermina(t *testing.T) {
	in := []*entity.Category{
		cat("x", "y", entity.StatusActive),
		cat("y", "x", entity.StatusActive),
	}

	got := category.CascadeTargets(in, "x", entity.StatusInactive)
	assert.Equal(t, []string{"x", "y"}, got)
}
