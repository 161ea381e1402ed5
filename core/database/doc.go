// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL and SQLite connections based on the application's configuration.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. MySQL is
// the deployment target; SQLite (including ":memory:") backs local runs and tests,
// matching the single-file layout the matcher's data originally lived in.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. The CLI's "db inspect"
// command uses GetTableColumns to print the live layout of the filters, membership,
// and summary tables.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "filters")
package database
