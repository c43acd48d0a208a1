// Package gorm provides GORM-based implementations of the store interfaces
// defined in pkg/store.
//
// A Connector opens one database/sql handle per operation, wraps it in
// GORM and closes it when the operation ends. The schema is created by the
// versioned migrations embedded under migrations/, one directory per
// driver; the highest migration is SchemaVersion.
package gorm
