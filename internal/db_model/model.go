package db_model

// Party represents a row of the parties table
type Party struct {
	ID   int64  `db_model:"id" json:"id"`
	Name string `db_model:"name" json:"name"`
}

// Candidate represents a candidate joined with the name of its party
type Candidate struct {
	ID                int64   `db_model:"id" json:"id"`
	FirstName         string  `db_model:"first_name" json:"first_name"`
	LastName          string  `db_model:"last_name" json:"last_name"`
	IndustryConnected bool    `db_model:"industry_connected" json:"industry_connected"`
	PartyID           *int64  `db_model:"party_id" json:"party_id"`
	PartyName         *string `db_model:"party_name" json:"party_name"`
}

// SQLiteSchema is the SQL schema for the parties and candidates tables.
// party_id carries no foreign key constraint: deleting a party leaves its candidates untouched.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS parties (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(50) NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    party_id INTEGER,
    first_name VARCHAR(30) NOT NULL,
    last_name VARCHAR(30) NOT NULL,
    industry_connected BOOLEAN NOT NULL
);
`

// PostgresSchema mirrors SQLiteSchema for Postgres
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS parties (
    id SERIAL PRIMARY KEY,
    name VARCHAR(50) NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
    id SERIAL PRIMARY KEY,
    party_id INTEGER,
    first_name VARCHAR(30) NOT NULL,
    last_name VARCHAR(30) NOT NULL,
    industry_connected BOOLEAN NOT NULL
);
`
