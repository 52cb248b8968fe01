package pgstore

// Schema creates the tables read by the store.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
  id          integer PRIMARY KEY,
  code        text    NOT NULL,
  parent_code text    NOT NULL,
  root_code   text    NOT NULL DEFAULT '',
  name        text    NOT NULL,
  type        text    NOT NULL,
  debit       boolean NOT NULL,
  company_id  integer NOT NULL DEFAULT 0,
  level       integer NOT NULL DEFAULT 0,
  description text    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS journal_lines (
  id          bigserial PRIMARY KEY,
  entry_id    text          NOT NULL,
  company_id  integer       NOT NULL,
  entry_date  date          NOT NULL,
  account_id  integer       NOT NULL REFERENCES accounts (id),
  description text          NOT NULL DEFAULT '',
  debit       numeric(18,2) NOT NULL DEFAULT 0,
  credit      numeric(18,2) NOT NULL DEFAULT 0,
  status      text          NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS journal_lines_company_date ON journal_lines (company_id, entry_date);
`
