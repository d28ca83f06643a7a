package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
)

func TestSearchCondition(t *testing.T) {
	assert.Nil(t, SearchCondition("", "name"))

	sql, args, err := SearchCondition("main", "c.name", "c.code").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(c.name ILIKE ? OR c.code ILIKE ?)", sql)
	assert.Equal(t, []interface{}{"%main%", "%main%"}, args)
}

func TestSearchConditionEscapesWildcards(t *testing.T) {
	for term, want := range map[string]string{
		"_":      `%\_%`,
		"100%":   `%100\%%`,
		`a\b`:    `%a\\b%`,
		"CS_101": `%CS\_101%`,
	} {
		_, args, err := SearchCondition(term, "c.name").ToSql()
		require.NoError(t, err)
		assert.Equal(t, []interface{}{want}, args, term)
	}
}

func TestOrderByClauses(t *testing.T) {
	columns := map[string]string{"gwa": "g.gwa", "semester": "g.semester"}
	got := OrderByClauses([]models.SortField{{Field: "gwa", Desc: true}, {Field: "bogus"}, {Field: "semester"}}, columns, "g.id")
	assert.Equal(t, []string{"g.gwa DESC", "g.semester ASC", "g.id ASC"}, got)
}
