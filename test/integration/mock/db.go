package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory sqlite database migrated with the back office models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string
}

// NewDb opens the shared database once and migrates the given models.
// Every model is registered under its gorm table name.
func NewDb(models ...any) *Db {
	once.Do(func() {
		db = open(models)
	})

	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file:backoffice?mode=memory&cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
	}

	for _, m := range models {
		table, err := tableName(dbConn, m)
		if err != nil {
			panic(err)
		}
		newDbMock.models[table] = m
		newDbMock.order = append(newDbMock.order, table)
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB deletes every row, children before parents.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		m := d.models[d.order[i]]
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", d.order[i], err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}

func tableName(conn *gorm.DB, m any) (string, error) {
	stmt := &gorm.Statement{DB: conn}
	if err := stmt.Parse(m); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}
