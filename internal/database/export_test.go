package database

var NewMigrateFrom = newMigrateFrom
