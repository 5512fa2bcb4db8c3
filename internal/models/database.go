package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MySQL error numbers, see https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	mysqlDuplicateEntry      = 1062
	mysqlNoReferencedRow     = 1452
	mysqlRowIsReferenced     = 1451
	sqlDatabaseClosedMessage = "sql: database is closed"
)

// uniqueErrors maps tables to the error returned when
// one of their unique constraints is violated.
var uniqueErrors = map[string]error{
	"users":      ErrEmailTaken,
	"categories": ErrCategoryNameNotUnique,
	"budgets":    ErrBudgetMonthNotUnique,
	"sessions":   ErrSessionTokenNotUnique,
}

var pluralSuffix = regexp.MustCompile("ies$")

// Migrate migrates all models to the schema defined in the code.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(User{}, Session{}, Category{}, Tag{}, Budget{}, Revenue{}, Expense{}, Alert{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

// RegisterCallbacks registers the callbacks that replace database errors
// with errors that can be shown to users.
func RegisterCallbacks(db *gorm.DB) error {
	// Query callbacks
	err := db.Callback().Query().After("*").Register("budgetwise:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("budgetwise:after_query").Register("budgetwise:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("budgetwise:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("budgetwise:after_create").Register("budgetwise:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("budgetwise:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("budgetwise:after_update").Register("budgetwise:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("budgetwise:after_delete", deleteCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Delete().After("budgetwise:after_delete").Register("budgetwise:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	// Row callbacks, used by Scan and Count
	return db.Callback().Row().After("*").Register("budgetwise:after_row_general", generalCallback)
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		name = pluralSuffix.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isUniqueViolation(db.Error) {
		if e, ok := uniqueErrors[db.Statement.Table]; ok {
			db.Error = e
		}
		return
	}

	if isForeignKeyViolation(db.Error) {
		db.Error = ErrReferenceNotFound
	}
}

// deleteCallback reports deletions of resources that are still referenced.
func deleteCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isForeignKeyViolation(db.Error) {
		db.Error = fmt.Errorf("%w: the resource is still in use", ErrReferenceNotFound)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	var sqliteErr *go_sqlite.Error
	var mysqlErr *mysql.MySQLError
	if db.Error.Error() == sqlDatabaseClosedMessage || errors.As(db.Error, &sqliteErr) || errors.As(db.Error, &mysqlErr) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlNoReferencedRow || mysqlErr.Number == mysqlRowIsReferenced
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
