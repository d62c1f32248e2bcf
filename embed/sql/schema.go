package sql

import _ "embed"

// Schema creates the tasks table. It only uses types shared by SQLite and MySQL.
//
//go:embed schema.sql
var Schema string
