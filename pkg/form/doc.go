// Package form aggregates fields into form-wide derived state. A Form holds
// read-through references to its fields; every State call recomputes the
// any/all predicates from the fields' latest snapshots.
package form
