package schema

// SchemaMigrationsTable represents the 'schema_migrations' ledger table
type SchemaMigrationsTable struct {
	Table     string
	Name      string
	AppliedAt string
}

// SchemaMigrations is the schema definition for the migration ledger
var SchemaMigrations = SchemaMigrationsTable{
	Table:     "schema_migrations",
	Name:      "name",
	AppliedAt: "applied_at",
}
