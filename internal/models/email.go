// Package models holds the record types shared by the exporter and the cleaner.
package models

// Email is one exported message in the four-column CSV schema.
type Email struct {
	Subject string
	Sender  string
	Body    string
	Date    string
}

// Columns is the fixed output column order.
var Columns = []string{"subject", "sender", "body", "date"}
