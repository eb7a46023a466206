// Package queries contains read-only operations over the catalog and placed
// orders. Catalog queries go through the CatalogRepository port, order
// lookups read the tables directly.
package queries
