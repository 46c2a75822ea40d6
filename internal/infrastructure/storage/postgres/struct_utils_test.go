package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cotizador/internal/core/entity"
	"cotizador/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "attributes", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code: "MAT-001",
		Name: "MDF 18mm",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "MAT-001", m["code"])
	assert.Equal(t, "MDF 18mm", m["name"])
}

func TestStructToMap_SkipsIgnoredFields(t *testing.T) {
	type withIgnored struct {
		Code  string   `db:"code"`
		Lines []string `db:"-"`
		plain string
	}

	m := StructToMap(withIgnored{Code: "X", Lines: []string{"a"}, plain: "y"})
	assert.Equal(t, "X", m["code"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 1)
}
