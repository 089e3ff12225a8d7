package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/categorias-api/internal/domain/entity"
)

func TestCategoryDoc_RaizGuardaParentNull(t *testing.T) {
	c := &entity.Category{ID: "a", Name: "Electronics", Status: entity.StatusActive, CreatedAt: time.Now().UTC()}

	raw, err := bson.Marshal(toCategoryDoc(c))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	v, ok := m["parent"]
	assert.True(t, ok, "parent debe existir aunque sea null")
	assert.Nil(t, v)
	assert.Equal(t, "a", m["_id"])
}

func TestCategoryDoc_IdaYVuelta(t *testing.T) {
	c := &entity.Category{ID: "b", Name: "Phones", ParentID: "a", Status: entity.StatusInactive, CreatedBy: "u"}

	got := toCategoryDoc(c).toEntity()
	assert.Equal(t, c, got)
}

func TestParentValue(t *testing.T) {
	assert.Nil(t, parentValue(""))
	assert.Equal(t, "x", parentValue("x"))
}

func TestCategoryDoc_GuardaNombrePlegado(t *testing.T) {
	d := toCategoryDoc(&entity.Category{ID: "c", Name: "Straße"})
	assert.Equal(t, "strasse", d.NameFold)
	assert.Equal(t, entity.FoldName("STRASSE"), d.NameFold, "STRASSE y Straße chocan al renombrar")

	raw, err := bson.Marshal(d)
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "strasse", m["nameFold"])
}
