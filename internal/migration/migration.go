/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package migration holds the SQLite schema.
package migration

// Create builds the full schema. Snapshot and feature documents are stored
// as JSON blobs; the relational columns exist for keying and freshness
// checks only.
const Create = `
CREATE TABLE IF NOT EXISTS User (
  name TEXT PRIMARY KEY,
  last_updated DATETIME
);

CREATE TABLE IF NOT EXISTS Snapshot (
  user TEXT PRIMARY KEY,
  fetched_at DATETIME NOT NULL,
  data TEXT NOT NULL,
  FOREIGN KEY (user) REFERENCES User(name)
);

CREATE TABLE IF NOT EXISTS Features (
  user TEXT NOT NULL,
  version TEXT NOT NULL,
  computed_at DATETIME NOT NULL,
  data TEXT NOT NULL,
  PRIMARY KEY (user, version),
  FOREIGN KEY (user) REFERENCES User(name)
);
`
