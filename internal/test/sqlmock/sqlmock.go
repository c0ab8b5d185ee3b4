package sqlmock

import (
	"github.com/DATA-DOG/go-sqlmock"
)

// Sqlmock interface.
type Sqlmock = sqlmock.Sqlmock

// New creates sqlmock database connection and a mock to manage expectations.
var New = sqlmock.New

// NewWithDSN creates sqlmock database connection with a specific DSN and a mock to manage expectations.
var NewWithDSN = sqlmock.NewWithDSN

// NewResult creates a new sql driver Result for Exec based query mocks.
var NewResult = sqlmock.NewResult

// NewRows allows Rows to be created from a sql driver.Value slice or from the CSV string and to be used as sql driver.Rows.
var NewRows = sqlmock.NewRows

// QueryMatcherOption allows to customize SQL query matcher.
var QueryMatcherOption = sqlmock.QueryMatcherOption

// QueryMatcherEqual is the SQL query matcher which simply tries a case-sensitive match of expected and actual SQL strings.
var QueryMatcherEqual = sqlmock.QueryMatcherEqual
