package database

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func TestSQLite_LowerFoldsUnicode(t *testing.T) {
	db, err := Open(SQLite("file:"+uuid.NewString()+"?mode=memory&cache=shared"), gormlogger.Default.LogMode(gormlogger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { CloseGORMDB(db, zap.NewNop()) })

	var lowered string
	require.NoError(t, db.Raw("SELECT LOWER(?)", "ÉMILE Ÿ").Row().Scan(&lowered))
	assert.Equal(t, "émile ÿ", lowered)

	var matches bool
	require.NoError(t, db.Raw(`SELECT LOWER(?) LIKE LOWER(?) ESCAPE '\'`, "Émile Zola", "%ÉMILE%").Row().Scan(&matches))
	assert.True(t, matches)

	var null sql.NullString
	require.NoError(t, db.Raw("SELECT LOWER(NULL)").Row().Scan(&null))
	assert.False(t, null.Valid)
}

func TestUnicodeLower(t *testing.T) {
	assert.Equal(t, "émile", unicodeLower("ÉMILE"))
	assert.Equal(t, "abc", unicodeLower([]byte("ABC")))
	assert.Equal(t, int64(7), unicodeLower(int64(7)))
	assert.Nil(t, unicodeLower(nil))
	assert.Nil(t, unicodeLower([]byte(nil)))
}
