package specification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type chatRow struct {
	Username  string
	Timestamp time.Time
}

func (chatRow) TableName() string { return "chat_history" }

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func toSQL(db *gorm.DB, specs ...Specification) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&chatRow{})
		for _, s := range specs {
			q = s.Apply(q)
		}
		var rows []chatRow
		return q.Find(&rows)
	})
}

func TestChatSpecifications(t *testing.T) {
	db := dryRunDB(t)
	day := time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC)

	sql := toSQL(db, ByUsername{Username: "alice"}, OnDate{Day: day}, OrderBy{Field: "timestamp"})

	assert.Contains(t, sql, `username = 'alice'`)
	assert.Contains(t, sql, "timestamp >= '2024-05-01 00:00:00")
	assert.Contains(t, sql, "timestamp < '2024-05-02 00:00:00")
	assert.Contains(t, sql, "ORDER BY timestamp ASC")
}

func TestCommonSpecifications(t *testing.T) {
	db := dryRunDB(t)

	sql := toSQL(db, OrderBy{Field: "timestamp", Desc: true}, Pagination{Limit: 10, Offset: 20})
	assert.Contains(t, sql, "ORDER BY timestamp DESC")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 20")

	sql = toSQL(db, ByEmail{Email: "b@example.com"}, BySource{Source: "guide.pdf"})
	assert.Contains(t, sql, `email = 'b@example.com'`)
	assert.Contains(t, sql, `source = 'guide.pdf'`)
}
