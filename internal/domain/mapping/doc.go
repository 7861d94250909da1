/*
Package mapping stores known selector replacements per application version.

Rows live in the PostgreSQL table selector_mappings and are accessed through
pgx. Reads from the HTTP layer go through Service, which bounds each query
with a timeout and stops calling the database while its circuit breaker is
open. Seeder loads a YAML file of mappings at startup.
*/
package mapping
