package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ProgramTableSchema = `
	CREATE TABLE IF NOT EXISTS programs (
		id VARCHAR NOT NULL PRIMARY KEY,
		title VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		total_amount DOUBLE NOT NULL,
		fiscal_year INTEGER NOT NULL,
		start_date TIMESTAMP NULL,
		end_date TIMESTAMP NULL
	);
`

const ProjectTableSchema = `
	CREATE TABLE IF NOT EXISTS projects (
		id VARCHAR NOT NULL PRIMARY KEY,
		program_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		sector VARCHAR,
		total_cost DOUBLE NOT NULL,
		progress DOUBLE NOT NULL DEFAULT 0,
		start_date TIMESTAMP NULL,
		end_date TIMESTAMP NULL
	);
`

const ExpenseTableSchema = `
	CREATE TABLE IF NOT EXISTS expenses (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		amount DOUBLE NOT NULL,
		date TIMESTAMP NULL,
		description VARCHAR
	);
`

const MilestoneTableSchema = `
	CREATE TABLE IF NOT EXISTS milestones (
		id VARCHAR NOT NULL PRIMARY KEY,
		project_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		status VARCHAR,
		due_date TIMESTAMP NULL,
		completed_at TIMESTAMP NULL
	);
`

var bootQueries = []string{
	ProgramTableSchema,
	ProjectTableSchema,
	ExpenseTableSchema,
	MilestoneTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
